package agents

// Agent es un agente comunitario de salud (ACS). Las fichas lo referencian por ID.
type Agent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}
