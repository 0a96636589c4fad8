package report

type Unit string

const (
	UnitCount Unit = "count"
	UnitRatio Unit = "ratio"
	UnitMs    Unit = "ms"
)

type Category string

const (
	CategoryOverview   Category = "overview"
	CategoryRetrieval  Category = "retrieval"
	CategoryLatency    Category = "latency"
	CategoryGeneration Category = "generation"
	CategoryContext    Category = "context"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

type Metric struct {
	Key      string   `json:"metric_key"`
	Label    string   `json:"metric_label"`
	Value    float64  `json:"metric_value"`
	Unit     Unit     `json:"unit"`
	Category Category `json:"category"`
}

// Record is the per-question entry. Flags are 0/1 integers to keep the file format stable.
type Record struct {
	ID                      string   `json:"id"`
	Question                string   `json:"question"`
	ExpectedSource          *string  `json:"expected_source"`
	RetrievedSources        []string `json:"retrieved_sources"`
	TopSource               *string  `json:"top_source"`
	SourceRank              *int     `json:"source_rank"`
	HitAt1                  int      `json:"hit_at_1"`
	HitAt3                  int      `json:"hit_at_3"`
	HitAt4                  int      `json:"hit_at_4"`
	Answer                  string   `json:"answer"`
	AnswerNonEmpty          int      `json:"answer_non_empty"`
	IsRefusal               int      `json:"is_refusal"`
	IsGrounded              int      `json:"is_grounded"`
	AnswerContextOverlap    float64  `json:"answer_context_overlap"`
	ExpectedKeywordCoverage float64  `json:"expected_keyword_coverage"`
	RetrievalLatencyMs      float64  `json:"retrieval_latency_ms"`
	GenerationLatencyMs     float64  `json:"generation_latency_ms"`
	TotalLatencyMs          float64  `json:"total_latency_ms"`
	ContextChars            int      `json:"context_chars"`
	AnswerChars             int      `json:"answer_chars"`
	Status                  string   `json:"status"`
	Error                   string   `json:"error,omitempty"`
}

type Report struct {
	GeneratedAt      string   `json:"generated_at"`
	GroundTruthPath  string   `json:"ground_truth_path"`
	PromptTemplateID string   `json:"prompt_template_id"`
	TopK             int      `json:"top_k"`
	TotalMetrics     int      `json:"total_metrics"`
	FailedQuestions  int      `json:"failed_questions"`
	Metrics          []Metric `json:"metrics"`
	PerQuestion      []Record `json:"per_question"`
}

// Meta describes the run a report belongs to.
type Meta struct {
	GroundTruthPath  string
	PromptTemplateID string
}

// Metric returns the metric with the given key.
func (r *Report) Metric(key string) (Metric, bool) {
	for _, m := range r.Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}
