package importer

import "strings"

// Controlled-vocabulary translations applied during import. The catalog
// source uses English ExerciseDB terms; the app displays pt-BR. Unknown
// values pass through unchanged.

var bodyPartTranslations = map[string]string{
	"back":       "Costas",
	"cardio":     "Cardio",
	"chest":      "Peito",
	"lower arms": "Antebraços",
	"lower legs": "Panturrilhas",
	"neck":       "Pescoço",
	"shoulders":  "Ombros",
	"upper arms": "Braços",
	"upper legs": "Pernas",
	"waist":      "Abdômen",
}

var equipmentTranslations = map[string]string{
	"assisted":            "Assistido",
	"band":                "Elástico",
	"barbell":             "Barra",
	"body weight":         "Peso Corporal",
	"bosu ball":           "Bola Bosu",
	"cable":               "Cabo",
	"dumbbell":            "Haltere",
	"elliptical machine":  "Elíptico",
	"ez barbell":          "Barra EZ",
	"hammer":              "Martelo",
	"kettlebell":          "Kettlebell",
	"leverage machine":    "Máquina de Alavanca",
	"medicine ball":       "Bola Medicinal",
	"olympic barbell":     "Barra Olímpica",
	"resistance band":     "Faixa de Resistência",
	"roller":              "Rolo",
	"rope":                "Corda",
	"skierg machine":      "Máquina SkiErg",
	"sled machine":        "Máquina de Trenó",
	"smith machine":       "Smith Machine",
	"stability ball":      "Bola de Estabilidade",
	"stationary bike":     "Bicicleta Ergométrica",
	"stepmill machine":    "Máquina Step",
	"tire":                "Pneu",
	"trap bar":            "Barra Trap",
	"upper body ergometer": "Ergômetro Superior",
	"weighted":            "Com Peso",
	"wheel roller":        "Roda",
}

var targetTranslations = map[string]string{
	"abs":                   "Abdominais",
	"adductors":             "Adutores",
	"abductors":             "Abdutores",
	"biceps":                "Bíceps",
	"calves":                "Panturrilhas",
	"cardiovascular system": "Sistema Cardiovascular",
	"delts":                 "Deltoides",
	"forearms":              "Antebraços",
	"glutes":                "Glúteos",
	"hamstrings":            "Posteriores",
	"lats":                  "Dorsais",
	"levator scapulae":      "Elevador da Escápula",
	"pectorals":             "Peitorais",
	"quads":                 "Quadríceps",
	"serratus anterior":     "Serrátil Anterior",
	"spine":                 "Coluna",
	"traps":                 "Trapézio",
	"triceps":               "Tríceps",
	"upper back":            "Costas Superior",
}

func translate(table map[string]string, value string) string {
	if t, ok := table[strings.ToLower(strings.TrimSpace(value))]; ok {
		return t
	}
	return strings.TrimSpace(value)
}

// TranslateBodyPart maps an English body-part term to its display form.
func TranslateBodyPart(v string) string { return translate(bodyPartTranslations, v) }

// TranslateEquipment maps an English equipment term to its display form.
func TranslateEquipment(v string) string { return translate(equipmentTranslations, v) }

// TranslateTarget maps an English target-muscle term to its display form.
func TranslateTarget(v string) string { return translate(targetTranslations, v) }
