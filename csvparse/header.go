package csvparse

import "strings"

// Canonical field names for the attendance (visits) schema.
const (
	FieldUnitCode = "unitCode"
	FieldUnitName = "unitName"
	FieldDate     = "date"
	FieldTime     = "time"
	FieldSpec     = "spec"
	FieldProf     = "prof"
	FieldProcCode = "procCode"
	FieldProcName = "procName"
	FieldCity     = "city"
	FieldAge      = "age"
	FieldGender   = "gender"
	FieldYear     = "year"
	FieldMonth    = "month"
)

// Canonical field names specific to the waiting-list (demand) schema.
// FieldProcCode and FieldAge are shared with the visits schema.
const (
	FieldReqDate   = "reqDate"
	FieldService   = "service"
	FieldProcedure = "procedure"
	FieldUnitRef   = "unitRef"
	FieldPriority  = "priority"
	FieldPatientID = "patientId"
	FieldCBOName   = "cboName"
)

// AliasTable maps a canonical field name to the header spellings seen in
// real exports. Matching is case-insensitive and exact: substring or
// fuzzy matches would risk binding unrelated columns.
type AliasTable map[string][]string

// VisitAliases covers the attendance export headers observed across
// upstream system versions.
var VisitAliases = AliasTable{
	FieldUnitCode: {"codigo_unidade", "cod_unidade", "unidade_codigo"},
	FieldUnitName: {"nome_unidade", "unidade", "nome_da_unidade"},
	FieldDate:     {"data_atendimento", "data", "dt_atendimento"},
	FieldTime:     {"hora_atendimento", "hora", "hr_atendimento", "horario"},
	FieldSpec:     {"nome_especialidade", "especialidade", "desc_especialidade"},
	FieldProf:     {"nome_profissional", "profissional", "nome_do_profissional"},
	FieldProcCode: {"codigo_procedimento", "cod_procedimento"},
	FieldProcName: {"nome_procedimento", "procedimento", "desc_procedimento"},
	FieldCity:     {"municipio", "cidade", "municipio_residencia", "municipio_paciente"},
	FieldAge:      {"idade", "idade_paciente"},
	FieldGender:   {"sexo", "genero"},
	FieldYear:     {"ano", "ano_atendimento"},
	FieldMonth:    {"mes", "mes_atendimento"},
}

// DemandAliases covers the waiting-list export headers.
var DemandAliases = AliasTable{
	FieldReqDate:   {"data_solicitacao", "dt_solicitacao", "data_pedido"},
	FieldService:   {"servico", "nome_servico", "desc_servico"},
	FieldProcedure: {"procedimento", "nome_procedimento", "procedimento_solicitado"},
	FieldProcCode:  {"codigo_procedimento", "cod_procedimento"},
	FieldUnitRef:   {"unidade_referencia", "unidade_encaminhada", "unidade_executante"},
	FieldPriority:  {"prioridade", "tipo_prioridade"},
	FieldPatientID: {"codigo_paciente", "id_paciente", "cod_paciente"},
	FieldCBOName:   {"nome_cbo", "cbo", "descricao_cbo", "desc_cbo"},
	FieldAge:       {"idade", "idade_paciente"},
}

// Resolve maps one raw header label to its canonical field name. Unknown
// labels pass through trimmed: the column stays addressable but no
// downstream logic binds to it.
func (t AliasTable) Resolve(raw string) string {
	label := strings.TrimSpace(raw)
	for canonical, aliases := range t {
		for _, alias := range aliases {
			if strings.EqualFold(label, alias) {
				return canonical
			}
		}
	}
	return label
}

// ResolveAll resolves a full header row.
func (t AliasTable) ResolveAll(raw []string) []string {
	resolved := make([]string, len(raw))
	for i, h := range raw {
		resolved[i] = t.Resolve(h)
	}
	return resolved
}

// Schema identifies which pipeline should process an upload.
type Schema int

const (
	SchemaUnknown Schema = iota
	SchemaVisits
	SchemaDemand
)

func (s Schema) String() string {
	switch s {
	case SchemaVisits:
		return "visits"
	case SchemaDemand:
		return "demand"
	default:
		return "unknown"
	}
}

// DetectSchema classifies a raw header row. A file is Demand when any
// header resolves to a demand-specific column (request date or unit
// reference), Visits when one resolves to an attendance date or unit
// code, Unknown otherwise. Unknown uploads must be rejected, not parsed
// on a best-effort basis.
func DetectSchema(header []string) Schema {
	for _, h := range header {
		switch DemandAliases.Resolve(h) {
		case FieldReqDate, FieldUnitRef:
			return SchemaDemand
		}
	}
	for _, h := range header {
		switch VisitAliases.Resolve(h) {
		case FieldDate, FieldUnitCode:
			return SchemaVisits
		}
	}
	return SchemaUnknown
}
