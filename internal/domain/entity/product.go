package entity

// Product datos de producto embebidos en stock, mínimos, alertas y solicitudes.
// Category, Type y Kind son texto libre; el backend llena uno u otro según la versión.
type Product struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Kind     string `json:"kind"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Unit     string `json:"unit"`
}

// CategoryCandidates campos de texto libre en orden de preferencia para inferir la categoría.
func (p *Product) CategoryCandidates() []string {
	if p == nil {
		return nil
	}
	return []string{p.Category, p.Type, p.Kind}
}

// Label texto para mostrar: "CODE - Nombre".
func (p *Product) Label() string {
	if p == nil {
		return ""
	}
	if p.Code == "" {
		return p.Name
	}
	return p.Code + " - " + p.Name
}
