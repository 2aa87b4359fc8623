package pipeline

import (
	"fmt"
	"math/rand"
	"strings"
)

// Demo data shown before the first upload: two units across two years,
// sized so every dashboard widget has something to draw.
const (
	demoSeed            = 1
	demoHospitalRows    = 300
	demoSpecialtyRows   = 200
	demoHospitalName    = "HOSPITAL RAYMUNDO CAMPOS"
	demoSpecialtyCenter = "CENTRO DE ESPECIALIDADES"
)

var demoYears = []string{"2024", "2025"}

var (
	demoHospitalSpecs = []string{"Médico clínico", "Médico pediatra", "Médico ortopedista", "Médico cirurgião"}
	demoHospitalProfs = []string{"Dr. João Silva", "Dra. Maria Oliveira", "Dr. Pedro Santos", "Dra. Ana Costa", "Dr. Lucas Pereira"}
	demoHospitalCodes = []string{"301060096", "9999999984", "301060029", "9990000096"}

	demoCenterSpecs = []string{"Médico cardiologista", "Médico angiologista", "Médico dermatologista", "Médico oftalmologista"}
	demoCenterProfs = []string{"Dr. Carlos Souza", "Dra. Fernanda Lima", "Dr. Roberto Almeida", "Dra. Juliana Martins"}
	demoCenterProcs = []string{"Consulta Eletiva", "Eletrocardiograma", "Retorno", "Exame Fundo de Olho"}

	demoCities = []string{"Belo Horizonte", "Contagem", "Betim", "Sabará", "Santa Luzia"}
)

// Demo builds the deterministic startup dataset. It renders a CSV and
// feeds it through Load, so demo data exercises the same tokenizer,
// alias resolution and record building as a real upload.
func Demo() *Dataset {
	ds, err := Load(demoCSV(), DefaultOptions())
	if err != nil {
		// The demo CSV is generated in-process; failing to parse it is
		// a programming error, not a data problem.
		panic(fmt.Sprintf("pipeline: demo dataset failed to load: %v", err))
	}
	return ds
}

func demoCSV() string {
	rng := rand.New(rand.NewSource(demoSeed))
	var b strings.Builder
	b.WriteString("codigo_unidade;nome_unidade;mes;ano;data_atendimento;hora_atendimento;" +
		"nome_especialidade;nome_profissional;codigo_procedimento;nome_procedimento;municipio;idade\n")

	for _, year := range demoYears {
		for i := 0; i < demoHospitalRows; i++ {
			day := rng.Intn(28) + 1
			month := rng.Intn(12) + 1
			fmt.Fprintf(&b, "104;%s;%d;%s;%02d/%02d/%s;%02d:%02d;%s;%s;%s;PROCEDIMENTO ORIGINAL CSV;%s;%d\n",
				demoHospitalName, month, year, day, month, year,
				rng.Intn(24), rng.Intn(60),
				pick(rng, demoHospitalSpecs), pick(rng, demoHospitalProfs),
				pick(rng, demoHospitalCodes), pick(rng, demoCities), rng.Intn(90))
		}
		for i := 0; i < demoSpecialtyRows; i++ {
			day := rng.Intn(28) + 1
			month := rng.Intn(12) + 1
			fmt.Fprintf(&b, "51;%s;%d;%s;%02d/%02d/%s;%02d:%02d;%s;%s;0000000;%s;%s;%d\n",
				demoSpecialtyCenter, month, year, day, month, year,
				7+rng.Intn(11), rng.Intn(60),
				pick(rng, demoCenterSpecs), pick(rng, demoCenterProfs),
				pick(rng, demoCenterProcs), pick(rng, demoCities), rng.Intn(90))
		}
	}
	return b.String()
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
