package services

import (
	"testing"

	"github.com/classpulse/classpulse/internal/models"
)

func TestAnalyzeScaleQuestion(t *testing.T) {
	q := models.Question{ID: "Q1", Text: "Rate the course", Type: models.QuestionScale, ScaleMin: 1, ScaleMax: 5}
	answers := []models.AnswerValue{
		scaleAns(3), scaleAns(4), scaleAns(4), textAns("x"), scaleAns(5),
	}

	sum := AnalyzeQuestion(q, answers, 5)
	if sum.TotalResponses != 5 {
		t.Fatalf("TotalResponses = %d, want 5", sum.TotalResponses)
	}
	sc := sum.Scale
	if sc == nil {
		t.Fatal("scale summary missing")
	}
	if sc.ValidCount != 4 {
		t.Fatalf("ValidCount = %d, want 4", sc.ValidCount)
	}
	if sc.Min == nil || *sc.Min != 3 || sc.Max == nil || *sc.Max != 5 {
		t.Fatalf("min/max = %v/%v, want 3/5", sc.Min, sc.Max)
	}
	if sc.Average == nil || *sc.Average != 4.0 {
		t.Fatalf("Average = %v, want 4.0", sc.Average)
	}
	want := map[int]int{1: 0, 2: 0, 3: 1, 4: 2, 5: 1}
	if len(sc.Histogram) != len(want) {
		t.Fatalf("histogram keys = %d, want %d", len(sc.Histogram), len(want))
	}
	bucketSum := 0
	for k, v := range want {
		if sc.Histogram[k] != v {
			t.Fatalf("histogram[%d] = %d, want %d", k, sc.Histogram[k], v)
		}
		bucketSum += sc.Histogram[k]
	}
	if bucketSum != sc.ValidCount {
		t.Fatalf("bucket sum = %d, want %d", bucketSum, sc.ValidCount)
	}
	if sum.ResponseRate != 100 {
		t.Fatalf("ResponseRate = %v, want 100", sum.ResponseRate)
	}
}

func TestAnalyzeScaleNoValidValues(t *testing.T) {
	q := models.Question{Type: models.QuestionScale, ScaleMin: 1, ScaleMax: 3}
	sum := AnalyzeQuestion(q, []models.AnswerValue{textAns("n/a")}, 1)
	sc := sum.Scale
	if sc.Min != nil || sc.Max != nil || sc.Average != nil {
		t.Fatalf("stats should be omitted with zero valid values, got %v/%v/%v", sc.Min, sc.Max, sc.Average)
	}
	if len(sc.Histogram) != 3 {
		t.Fatalf("histogram keys = %d, want 3", len(sc.Histogram))
	}
	for k, v := range sc.Histogram {
		if v != 0 {
			t.Fatalf("histogram[%d] = %d, want 0", k, v)
		}
	}
	if sum.TotalResponses != 1 {
		t.Fatalf("TotalResponses = %d, want 1", sum.TotalResponses)
	}
}

func TestAnalyzeScaleDefaultsRange(t *testing.T) {
	q := models.Question{Type: models.QuestionScale}
	sum := AnalyzeQuestion(q, []models.AnswerValue{scaleAns(2)}, 1)
	if len(sum.Scale.Histogram) != 5 {
		t.Fatalf("default histogram keys = %d, want 5", len(sum.Scale.Histogram))
	}
}

func TestAnalyzeYesNoQuestion(t *testing.T) {
	q := models.Question{Type: models.QuestionYesNo}
	answers := []models.AnswerValue{
		yesNoAns(true),
		textAns("Yes"),
		yesNoAns(false),
		textAns("maybe"), // counted toward total, neither bucket
	}
	sum := AnalyzeQuestion(q, answers, 4)
	yn := sum.YesNo
	if yn.YesCount != 2 || yn.NoCount != 1 {
		t.Fatalf("yes/no = %d/%d, want 2/1", yn.YesCount, yn.NoCount)
	}
	if sum.TotalResponses != 4 {
		t.Fatalf("TotalResponses = %d, want 4", sum.TotalResponses)
	}
	if yn.YesCount+yn.NoCount > sum.TotalResponses {
		t.Fatal("bucket counts exceed total responses")
	}
	if yn.YesPercentage != 50 || yn.NoPercentage != 25 {
		t.Fatalf("percentages = %v/%v, want 50/25", yn.YesPercentage, yn.NoPercentage)
	}
}

func TestAnalyzeYesNoEmpty(t *testing.T) {
	q := models.Question{Type: models.QuestionYesNo}
	sum := AnalyzeQuestion(q, nil, 0)
	if sum.YesNo.YesPercentage != 0 || sum.YesNo.NoPercentage != 0 {
		t.Fatal("percentages should be 0 with no answers")
	}
	if sum.ResponseRate != 0 {
		t.Fatalf("ResponseRate = %v, want 0", sum.ResponseRate)
	}
}

func TestAnalyzeMultipleChoice(t *testing.T) {
	q := models.Question{Type: models.QuestionMultipleChoice, Options: []string{"A", "B", "C"}}
	answers := []models.AnswerValue{
		choiceAns("A"),
		multiAns("B", "C"),
		choiceAns("A"),
	}
	sum := AnalyzeQuestion(q, answers, 3)
	if sum.TotalResponses != 3 {
		t.Fatalf("TotalResponses = %d, want 3", sum.TotalResponses)
	}
	got := map[string]OptionCount{}
	for _, oc := range sum.Options {
		got[oc.Option] = oc
	}
	if got["A"].Count != 2 || got["B"].Count != 1 || got["C"].Count != 1 {
		t.Fatalf("counts = %v", got)
	}
	if got["A"].Percentage != 66.67 {
		t.Fatalf("percentage(A) = %v, want 66.67", got["A"].Percentage)
	}
	// multi-select fan-out: one answer may contribute to several options
	total := 0
	for _, oc := range sum.Options {
		total += oc.Count
	}
	if total != 4 {
		t.Fatalf("fan-out total = %d, want 4", total)
	}
}

func TestAnalyzeMultipleChoiceUndeclaredOption(t *testing.T) {
	q := models.Question{Type: models.QuestionMultipleChoice, Options: []string{"A", "B"}}
	sum := AnalyzeQuestion(q, []models.AnswerValue{choiceAns("Z")}, 1)
	if sum.TotalResponses != 1 {
		t.Fatalf("TotalResponses = %d, want 1", sum.TotalResponses)
	}
	for _, oc := range sum.Options {
		if oc.Option == "Z" {
			t.Fatal("undeclared option surfaced in summary")
		}
		if oc.Count != 0 {
			t.Fatalf("option %s count = %d, want 0", oc.Option, oc.Count)
		}
	}
}

func TestAnalyzeTextQuestion(t *testing.T) {
	q := models.Question{Type: models.QuestionTextarea}
	answers := []models.AnswerValue{
		textAns("great"),
		textAns("   "), // blank after trim, excluded
		textAns("good stuff"),
		unanswered(models.QuestionTextarea),
	}
	sum := AnalyzeQuestion(q, answers, 4)
	txt := sum.Text
	if txt.Count != 2 {
		t.Fatalf("Count = %d, want 2", txt.Count)
	}
	if txt.AvgLength != 7.5 {
		t.Fatalf("AvgLength = %v, want 7.5", txt.AvgLength)
	}
	if txt.AvgWordCount != 1.5 {
		t.Fatalf("AvgWordCount = %v, want 1.5", txt.AvgWordCount)
	}
	if len(txt.SampleResponses) != 2 || txt.SampleResponses[0] != "great" {
		t.Fatalf("samples = %v", txt.SampleResponses)
	}
	// "   " is answered but blank; it still counts as a received answer
	if sum.TotalResponses != 3 {
		t.Fatalf("TotalResponses = %d, want 3", sum.TotalResponses)
	}
}

func TestAnalyzeTextSampleLimit(t *testing.T) {
	q := models.Question{Type: models.QuestionText}
	answers := make([]models.AnswerValue, 0, 8)
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		answers = append(answers, textAns(s))
	}
	sum := AnalyzeQuestion(q, answers, 8)
	if len(sum.Text.SampleResponses) != 5 {
		t.Fatalf("samples = %d, want 5", len(sum.Text.SampleResponses))
	}
	if sum.Text.SampleResponses[4] != "e" {
		t.Fatalf("samples are not first-5 in input order: %v", sum.Text.SampleResponses)
	}
}
