package rank

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/pdiddy/genoscope/pkg/types"
)

func baseIntent() types.Intent {
	return types.Intent{
		DataType:  types.DataRNASeq,
		Organism:  "human",
		Condition: "cancer",
		Keywords:  []string{"breast", "cancer"},
	}
}

func TestScoreComponents(t *testing.T) {
	intent := baseIntent()

	tests := []struct {
		name   string
		record types.Record
		want   float64
	}{
		{
			"priority only",
			types.Record{Priority: 1, Title: "zzz", Organism: "none"},
			0.6,
		},
		{
			"priority 2",
			types.Record{Priority: 2, Title: "zzz", Organism: "none"},
			0.4,
		},
		{
			"priority 4 contributes nothing",
			types.Record{Priority: 4, Title: "zzz", Organism: "none"},
			0.0,
		},
		{
			"priority beyond table clamps at zero",
			types.Record{Priority: 7, Title: "zzz", Organism: "none"},
			0.0,
		},
		{
			"organism match",
			types.Record{Priority: 4, Title: "zzz", Organism: "Homo sapiens (human)"},
			0.3,
		},
		{
			"expression term in title",
			types.Record{Priority: 4, Title: "transcriptome atlas", Organism: "none"},
			0.2,
		},
		{
			"one keyword in title",
			types.Record{Priority: 4, Title: "breast samples", Organism: "none"},
			0.1,
		},
		{
			"everything, clamped",
			types.Record{Priority: 1, Title: "breast cancer rna expression", Organism: "human"},
			1.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.record, intent)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	// Many keyword hits push the raw sum past 1.0; the clamp holds.
	intent := types.Intent{
		DataType: types.DataRNASeq,
		Organism: "human",
		Keywords: []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10"},
	}
	record := types.Record{
		Priority: 1,
		Organism: "human",
		Title:    "a1 a2 a3 a4 a5 a6 a7 a8 a9 a10 rna",
	}
	got := Score(record, intent)
	if got != 1.0 {
		t.Errorf("Score = %f, want clamp to 1.0", got)
	}
}

func TestScoreMonotonicInKeywordMatches(t *testing.T) {
	intent := types.Intent{
		DataType: types.DataDNASeq,
		Organism: "yeast",
		Keywords: []string{"alpha", "beta", "gamma"},
	}

	prev := -1.0
	title := ""
	for _, kw := range intent.Keywords {
		title += kw + " "
		got := Score(types.Record{Priority: 4, Title: title, Organism: "none"}, intent)
		if got < prev {
			t.Errorf("score decreased with more keyword matches: %f -> %f", prev, got)
		}
		prev = got
	}
}

func TestScoreExpressionTermOnlyForExpressionLike(t *testing.T) {
	record := types.Record{Priority: 4, Title: "rna profile", Organism: "none"}

	exprIntent := types.Intent{DataType: types.DataExpression}
	if got := Score(record, exprIntent); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("expression-like Score = %f, want 0.2", got)
	}

	dnaIntent := types.Intent{DataType: types.DataDNASeq}
	if got := Score(record, dnaIntent); got != 0.0 {
		t.Errorf("non-expression Score = %f, want 0", got)
	}
}

func TestRankSortsAndTruncates(t *testing.T) {
	intent := baseIntent()

	var records []types.Record
	for i := 0; i < 15; i++ {
		records = append(records, types.Record{
			Accession: fmt.Sprintf("ACC%d", i),
			Priority:  1 + i%3,
			Title:     "plain",
			Organism:  "none",
		})
	}

	ranked := Rank(records, intent, 0)
	if len(ranked) != DefaultMaxResults {
		t.Fatalf("len(ranked) = %d, want %d", len(ranked), DefaultMaxResults)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].RelevanceScore > ranked[i-1].RelevanceScore {
			t.Errorf("not sorted at %d: %f > %f", i, ranked[i].RelevanceScore, ranked[i-1].RelevanceScore)
		}
	}
	// Input slice must keep its zero scores (Rank copies).
	if records[0].RelevanceScore != 0 {
		t.Error("Rank must not mutate its input")
	}
}

func TestRankStableOnTies(t *testing.T) {
	intent := types.Intent{DataType: types.DataDNASeq, Organism: "none"}

	// Same priority and no matches: all scores equal, order preserved.
	records := []types.Record{
		{Accession: "first", Priority: 1, Title: "x", Organism: "y"},
		{Accession: "second", Priority: 1, Title: "x", Organism: "y"},
		{Accession: "third", Priority: 1, Title: "x", Organism: "y"},
	}

	ranked := Rank(records, intent, 10)
	want := []string{"first", "second", "third"}
	for i, acc := range want {
		if ranked[i].Accession != acc {
			t.Errorf("ranked[%d] = %q, want %q (stable order)", i, ranked[i].Accession, acc)
		}
	}
}

func TestRecommendEmpty(t *testing.T) {
	got := Recommend(nil, baseIntent())
	if len(got) != 1 {
		t.Fatalf("len(recommendations) = %d, want exactly 1", len(got))
	}
	if got[0] != MsgNoResults {
		t.Errorf("recommendation = %q, want %q", got[0], MsgNoResults)
	}
}

func TestRecommendBackendMessages(t *testing.T) {
	records := []types.Record{
		{Backend: types.BackendSRA, RelevanceScore: 0.4},
		{Backend: types.BackendGDS, RelevanceScore: 0.3},
	}

	got := Recommend(records, baseIntent())
	if len(got) != 2 {
		t.Fatalf("recommendations = %v, want 2 backend messages", got)
	}
	// Dataset catalog message first, run archive second.
	if got[0] != MsgGEODatasets {
		t.Errorf("got[0] = %q, want %q", got[0], MsgGEODatasets)
	}
	if got[1] != MsgSRADownloads {
		t.Errorf("got[1] = %q, want %q", got[1], MsgSRADownloads)
	}
}

func TestRecommendHighRelevanceCount(t *testing.T) {
	records := []types.Record{
		{Backend: types.BackendNuccore, RelevanceScore: 0.9},
		{Backend: types.BackendNuccore, RelevanceScore: 0.6},
		{Backend: types.BackendNuccore, RelevanceScore: 0.5},
	}

	got := Recommend(records, baseIntent())
	if len(got) != 1 {
		t.Fatalf("recommendations = %v, want only the count message", got)
	}
	if !strings.Contains(got[0], "2 highly relevant") {
		t.Errorf("got[0] = %q, want count of scores strictly above 0.5", got[0])
	}
}
