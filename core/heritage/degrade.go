package heritage

import "fmt"

// Static fallback payloads. A degraded response is well-formed content plus a
// reason code, never an error, so the UI can render something honest without
// special-casing failures. The payloads are English only: localizing them
// would need the very upstream that just failed.

func fallbackComposite(subject string) Composite {
	return Composite{
		Metadata: Metadata{
			Name:         subject,
			Location:     "Unknown",
			Period:       "Unknown",
			Significance: fmt.Sprintf("Detailed information about %s is temporarily unavailable.", subject),
		},
		NarrativeSections: []Section{{
			Title: "About " + subject,
			Body: fmt.Sprintf("%s is a heritage subject. Our knowledge services are "+
				"temporarily unavailable; please try again in a little while.", subject),
		}},
		VisualSections: []Section{{
			Title: "Visiting " + subject,
			Body:  "Visual highlights could not be prepared right now.",
		}},
		VisualExperience: fmt.Sprintf("Imagine standing before %s, taking in its history.", subject),
	}
}

func fallbackAnalysis() []Section {
	return []Section{{
		Title: "Analysis unavailable",
		Body: "The uploaded images could not be analyzed right now. " +
			"Please try again in a little while.",
	}}
}

func degradedComposite(subject string, status Status, reason Reason) CompositeResult {
	return CompositeResult{
		Composite:  fallbackComposite(subject),
		ServedFrom: ServedFromFallback,
		Status:     status,
		Reason:     reason,
	}
}

func degradedAnalysis(status Status, reason Reason) AnalysisResult {
	return AnalysisResult{
		Sections:   fallbackAnalysis(),
		ServedFrom: ServedFromFallback,
		Status:     status,
		Reason:     reason,
	}
}
