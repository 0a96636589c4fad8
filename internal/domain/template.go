package domain

const DefaultPromptTemplateID = "persona_professional"

type PromptTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Template  string    `json:"template"`
	CreatedAt Timestamp `json:"created_at,omitempty"`
}

// DefaultPromptTemplates returns the persona templates seeded on startup.
func DefaultPromptTemplates() []PromptTemplate {
	return []PromptTemplate{
		{
			ID:   "persona_professional",
			Name: "Professional Agent",
			Template: "Use a formal and professional call-center tone. " +
				"Give clear, policy-aligned answers from retrieved PDF context only. " +
				"Do not add information outside the PDFs.",
		},
		{
			ID:   "persona_empathetic",
			Name: "Empathetic Agent",
			Template: "Respond with empathy and reassurance like a customer-care specialist. " +
				"Acknowledge customer concern first, then provide steps from retrieved PDF context only. " +
				"Do not add information outside the PDFs.",
		},
		{
			ID:   "persona_resolution",
			Name: "Resolution Agent",
			Template: "Focus on fast resolution. Give short step-by-step actions with numbered points. " +
				"Use retrieved PDF context only and avoid extra assumptions.",
		},
	}
}
