package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateDBSkipsUnchangedFile(t *testing.T) {
	dir := t.TempDir()
	db, err := OpenStateDB(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	csv := filepath.Join(dir, "exercises.csv")
	if err := os.WriteFile(csv, []byte("id,name\n0001,situp\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(csv)
	if err != nil {
		t.Fatal(err)
	}
	hash, err := HashFile(csv)
	if err != nil {
		t.Fatal(err)
	}

	done, err := db.IsImported(csv, info.Size(), hash)
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Fatal("fresh file reported as imported")
	}

	if err := db.MarkImported(csv, info.Size(), hash, 1); err != nil {
		t.Fatal(err)
	}
	done, err = db.IsImported(csv, info.Size(), hash)
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Fatal("unchanged file not skipped")
	}
}

func TestStateDBReimportsChangedFile(t *testing.T) {
	dir := t.TempDir()
	db, err := OpenStateDB(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	csv := filepath.Join(dir, "exercises.csv")
	if err := os.WriteFile(csv, []byte("id,name\n0001,situp\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	info, _ := os.Stat(csv)
	hash, _ := HashFile(csv)
	if err := db.MarkImported(csv, info.Size(), hash, 1); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(csv, []byte("id,name\n0001,situp\n0002,plank\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	info, _ = os.Stat(csv)
	hash, _ = HashFile(csv)

	done, err := db.IsImported(csv, info.Size(), hash)
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Fatal("changed file wrongly skipped")
	}

	// MarkImported upserts the new size and hash for the same path.
	if err := db.MarkImported(csv, info.Size(), hash, 2); err != nil {
		t.Fatal(err)
	}
	done, err = db.IsImported(csv, info.Size(), hash)
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Fatal("re-imported file not recorded")
	}
}
