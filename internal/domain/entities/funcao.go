package entities

// Funcao representa o papel de um usuário no painel
type Funcao string

const (
	FuncaoAdministrador Funcao = "Administrador"
	FuncaoOperador      Funcao = "Operador"
	FuncaoVisitante     Funcao = "Visitante"
)

// Status representa a situação da conta
type Status string

const (
	StatusAtivo   Status = "Ativo"
	StatusInativo Status = "Inativo"
)

// Defaults aplicados na criação quando o cliente omite os campos
const (
	DefaultFuncao = FuncaoOperador
	DefaultStatus = StatusAtivo
)
