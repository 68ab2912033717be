package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/classpulse/classpulse/internal/models"
)

const textSampleLimit = 5

// ScaleSummary reports distribution stats for a scale question. Min, Max and
// Average are only present when at least one answer parsed; the histogram is
// always emitted, zero-filled over [ScaleMin, ScaleMax].
type ScaleSummary struct {
	ScaleMin   int         `json:"scale_min"`
	ScaleMax   int         `json:"scale_max"`
	ValidCount int         `json:"valid_count"`
	Min        *int        `json:"min,omitempty"`
	Max        *int        `json:"max,omitempty"`
	Average    *float64    `json:"average,omitempty"`
	Histogram  map[int]int `json:"histogram"`
}

type YesNoSummary struct {
	YesCount      int     `json:"yes_count"`
	NoCount       int     `json:"no_count"`
	YesPercentage float64 `json:"yes_percentage"`
	NoPercentage  float64 `json:"no_percentage"`
}

type OptionCount struct {
	Option     string  `json:"option"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type TextSummary struct {
	Count           int      `json:"count"`
	AvgLength       float64  `json:"avg_length"`
	AvgWordCount    float64  `json:"avg_word_count"`
	SampleResponses []string `json:"sample_responses"`
}

// QuestionSummary is the type-tagged analysis result for one question. Exactly
// one of the type-specific sections is populated, matching Type.
type QuestionSummary struct {
	QuestionID     string              `json:"question_id"`
	Question       string              `json:"question"`
	Type           models.QuestionType `json:"type"`
	TotalResponses int                 `json:"total_responses"`
	ResponseRate   float64             `json:"response_rate"`
	Scale          *ScaleSummary       `json:"scale,omitempty"`
	YesNo          *YesNoSummary       `json:"yesno,omitempty"`
	Options        []OptionCount       `json:"options,omitempty"`
	Text           *TextSummary        `json:"text,omitempty"`
}

// AnalyzeQuestion reduces the raw answers given to a single question into a
// type-specific statistical summary. participants is the number of answer sets
// that could have answered the question; it drives the response rate.
func AnalyzeQuestion(q models.Question, answers []models.AnswerValue, participants int) QuestionSummary {
	total := 0
	for _, a := range answers {
		if a.Answered {
			total++
		}
	}
	summary := QuestionSummary{
		QuestionID:     q.ID,
		Question:       q.Text,
		Type:           q.Type,
		TotalResponses: total,
		ResponseRate:   percent(total, participants),
	}
	switch q.Type {
	case models.QuestionScale:
		summary.Scale = analyzeScale(q, answers)
	case models.QuestionYesNo:
		summary.YesNo = analyzeYesNo(answers, total)
	case models.QuestionMultipleChoice:
		summary.Options = analyzeChoices(q, answers, total)
	case models.QuestionText, models.QuestionTextarea:
		summary.Text = analyzeText(answers)
	}
	return summary
}

func analyzeScale(q models.Question, answers []models.AnswerValue) *ScaleSummary {
	lo, hi := q.ScaleMin, q.ScaleMax
	if hi <= lo {
		lo, hi = 1, 5
	}
	hist := make(map[int]int, hi-lo+1)
	for v := lo; v <= hi; v++ {
		hist[v] = 0
	}
	out := &ScaleSummary{ScaleMin: lo, ScaleMax: hi, Histogram: hist}

	sum := 0
	for _, a := range answers {
		v, ok := scaleValue(a)
		if !ok || v < lo || v > hi {
			continue
		}
		hist[v]++
		sum += v
		if out.ValidCount == 0 {
			out.Min, out.Max = ptrInt(v), ptrInt(v)
		} else {
			if v < *out.Min {
				*out.Min = v
			}
			if v > *out.Max {
				*out.Max = v
			}
		}
		out.ValidCount++
	}
	if out.ValidCount > 0 {
		avg := round2(float64(sum) / float64(out.ValidCount))
		out.Average = &avg
	}
	return out
}

// scaleValue extracts an integer from an answer, tolerating historical records
// where a scale answer was stored as free text.
func scaleValue(a models.AnswerValue) (int, bool) {
	if !a.Answered {
		return 0, false
	}
	switch a.Type {
	case models.QuestionScale:
		return a.Scale, true
	case models.QuestionText, models.QuestionTextarea:
		if n, err := strconv.Atoi(strings.TrimSpace(a.Text)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func analyzeYesNo(answers []models.AnswerValue, total int) *YesNoSummary {
	out := &YesNoSummary{}
	for _, a := range answers {
		if !a.Answered {
			continue
		}
		switch a.Type {
		case models.QuestionYesNo:
			if a.YesNo {
				out.YesCount++
			} else {
				out.NoCount++
			}
		case models.QuestionText, models.QuestionTextarea:
			switch strings.ToLower(strings.TrimSpace(a.Text)) {
			case "yes":
				out.YesCount++
			case "no":
				out.NoCount++
			}
		}
	}
	out.YesPercentage = percent(out.YesCount, total)
	out.NoPercentage = percent(out.NoCount, total)
	return out
}

func analyzeChoices(q models.Question, answers []models.AnswerValue, total int) []OptionCount {
	counts := make(map[string]int, len(q.Options))
	for _, a := range answers {
		if !a.Answered {
			continue
		}
		if a.Choice != "" {
			counts[a.Choice]++
		}
		for _, c := range a.Choices {
			counts[c]++
		}
	}
	// Tally only against declared options; undeclared selections are dropped.
	out := make([]OptionCount, 0, len(q.Options))
	for _, opt := range q.Options {
		out = append(out, OptionCount{
			Option:     opt,
			Count:      counts[opt],
			Percentage: percent(counts[opt], total),
		})
	}
	return out
}

func analyzeText(answers []models.AnswerValue) *TextSummary {
	out := &TextSummary{SampleResponses: []string{}}
	chars, words := 0, 0
	for _, a := range answers {
		if !a.Answered {
			continue
		}
		text := strings.TrimSpace(a.Text)
		if text == "" {
			continue
		}
		out.Count++
		chars += len([]rune(text))
		words += len(strings.Fields(text))
		if len(out.SampleResponses) < textSampleLimit {
			out.SampleResponses = append(out.SampleResponses, text)
		}
	}
	if out.Count > 0 {
		out.AvgLength = round2(float64(chars) / float64(out.Count))
		out.AvgWordCount = round2(float64(words) / float64(out.Count))
	}
	return out
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptrInt(v int) *int { return &v }
