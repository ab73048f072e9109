package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/genoscope/internal/rank"
	"github.com/pdiddy/genoscope/pkg/types"
)

// fakeRetriever returns canned records and failures, and captures the
// strategies it was handed.
type fakeRetriever struct {
	records    []types.Record
	failures   []string
	failAll    bool
	strategies []types.SearchStrategy
	lookup     types.Record
	lookupErr  error
}

func (f *fakeRetriever) Execute(_ context.Context, strategies []types.SearchStrategy) ([]types.Record, []string) {
	f.strategies = strategies
	if f.failAll {
		msgs := make([]string, len(strategies))
		for i, s := range strategies {
			msgs[i] = s.Name + ": failed"
		}
		return nil, msgs
	}
	return f.records, f.failures
}

func (f *fakeRetriever) Lookup(_ context.Context, _ string) (types.Record, error) {
	return f.lookup, f.lookupErr
}

func (f *fakeRetriever) FetchSequences(_ context.Context, _ []string, _ string) (string, error) {
	return ">seq\nACGT\n", nil
}

func newTestAgent(f *fakeRetriever) *Agent {
	return NewWithRetriever(types.PipelineConfig{}, f)
}

func TestProcessQueryEndToEnd(t *testing.T) {
	f := &fakeRetriever{
		records: []types.Record{
			{Accession: "SRR1", Title: "human breast cancer rna-seq", Organism: "Homo sapiens",
				Backend: types.BackendSRA, RecordType: types.RecordRun, Priority: 1},
			{Accession: "GSE9", Title: "unrelated study", Organism: "Mus musculus",
				Backend: types.BackendGDS, RecordType: types.RecordDataset, Priority: 2},
		},
	}
	a := newTestAgent(f)

	resp, err := a.ProcessQuery(context.Background(), "Find human breast cancer RNA-seq data")
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}

	// Intent classification.
	if resp.Intent.DataType != types.DataRNASeq {
		t.Errorf("DataType = %q", resp.Intent.DataType)
	}
	if resp.Intent.Organism != "human" || resp.Intent.Condition != "cancer" {
		t.Errorf("Intent = %+v", resp.Intent)
	}

	// Two strategies: sra primary, gds secondary.
	if len(resp.Strategies) != 2 {
		t.Fatalf("len(Strategies) = %d, want 2", len(resp.Strategies))
	}
	if resp.Strategies[0].Backend != types.BackendSRA || resp.Strategies[0].Priority != 1 {
		t.Errorf("primary strategy = %+v", resp.Strategies[0])
	}
	if resp.Strategies[1].Backend != types.BackendGDS || resp.Strategies[1].Priority != 2 {
		t.Errorf("secondary strategy = %+v", resp.Strategies[1])
	}

	// Records ranked: the matching SRA record must outrank the other.
	if len(resp.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(resp.Records))
	}
	if resp.Records[0].Accession != "SRR1" {
		t.Errorf("top record = %q, want SRR1", resp.Records[0].Accession)
	}
	if resp.Records[0].RelevanceScore <= resp.Records[1].RelevanceScore {
		t.Error("records not ordered by score")
	}

	// Every record carries backend, accession, and a matching URL.
	for _, r := range resp.Records {
		if r.Accession == "" || r.Backend == "" {
			t.Errorf("record missing accession/backend: %+v", r)
		}
		if r.DownloadURL != DownloadURL(r.Backend, r.Accession) {
			t.Errorf("DownloadURL = %q, want template for %s", r.DownloadURL, r.Backend)
		}
	}

	if len(resp.Recommendations) == 0 {
		t.Error("recommendations should not be empty")
	}
}

func TestProcessQueryProteinScenario(t *testing.T) {
	f := &fakeRetriever{}
	a := newTestAgent(f)

	resp, err := a.ProcessQuery(context.Background(), "COVID-19 protein sequences")
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if len(resp.Strategies) != 1 {
		t.Fatalf("len(Strategies) = %d, want 1", len(resp.Strategies))
	}
	if resp.Strategies[0].Backend != types.BackendProtein {
		t.Errorf("Backend = %q, want protein", resp.Strategies[0].Backend)
	}
}

func TestProcessQueryAllEmptyIsSuccess(t *testing.T) {
	// All adapters returned nothing, but none failed: a valid Response
	// with zero records and the broader-terms recommendation.
	f := &fakeRetriever{}
	a := newTestAgent(f)

	resp, err := a.ProcessQuery(context.Background(), "zebrafish chip-seq histone")
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if len(resp.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(resp.Records))
	}
	if len(resp.Recommendations) != 1 || !strings.Contains(resp.Recommendations[0], "broader search terms") {
		t.Errorf("Recommendations = %v, want the broader-terms message", resp.Recommendations)
	}
}

func TestProcessQueryAllStrategiesFailed(t *testing.T) {
	f := &fakeRetriever{failAll: true}
	a := newTestAgent(f)

	_, err := a.ProcessQuery(context.Background(), "human cancer rna-seq")
	if err == nil {
		t.Fatal("expected error when every strategy failed")
	}

	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("error type = %T, want *QueryError", err)
	}
	if qe.OriginalQuery != "human cancer rna-seq" {
		t.Errorf("OriginalQuery = %q", qe.OriginalQuery)
	}
}

func TestProcessQueryPartialFailure(t *testing.T) {
	// One strategy fails, the other delivers: success with its records.
	f := &fakeRetriever{
		records: []types.Record{
			{Accession: "GSE1", Backend: types.BackendGDS, Title: "t", Organism: "o", Priority: 2},
		},
		failures: []string{"direct_keywords: HTTP 500"},
	}
	a := newTestAgent(f)

	resp, err := a.ProcessQuery(context.Background(), "human cancer rna-seq")
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if len(resp.Records) != 1 {
		t.Errorf("len(Records) = %d, want 1", len(resp.Records))
	}
}

func TestProcessQueryEmptyText(t *testing.T) {
	a := newTestAgent(&fakeRetriever{})
	_, err := a.ProcessQuery(context.Background(), "   ")
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError for blank query, got %v", err)
	}
}

func TestDownloadURLTemplates(t *testing.T) {
	tests := []struct {
		backend types.Backend
		want    string
	}{
		{types.BackendGDS, "https://www.ncbi.nlm.nih.gov/geo/query/acc.cgi?acc=GSE12345"},
		{types.BackendSRA, "https://www.ncbi.nlm.nih.gov/sra/SRR12345"},
		{types.BackendNuccore, "https://www.ncbi.nlm.nih.gov/nuccore/NM_007294"},
		{types.BackendProtein, "https://www.ncbi.nlm.nih.gov/nuccore/NP_009225"},
	}
	accs := []string{"GSE12345", "SRR12345", "NM_007294", "NP_009225"}
	for i, tt := range tests {
		if got := DownloadURL(tt.backend, accs[i]); got != tt.want {
			t.Errorf("DownloadURL(%s) = %q, want %q", tt.backend, got, tt.want)
		}
	}
}

func TestFormatTable(t *testing.T) {
	resp := &types.Response{
		OriginalQuery: "human cancer rna-seq",
		Intent:        types.Intent{DataType: types.DataRNASeq, Organism: "human", Condition: "cancer"},
		Records: []types.Record{
			{Accession: "SRR1", Title: "breast tumor run", Backend: types.BackendSRA, RelevanceScore: 0.9},
		},
		Recommendations: []string{rank.MsgSRADownloads},
	}

	var buf bytes.Buffer
	FormatTable(resp, &buf)
	s := buf.String()

	for _, want := range []string{"SRR1", "breast tumor run", "0.90", rank.MsgSRADownloads} {
		if !strings.Contains(s, want) {
			t.Errorf("table output missing %q:\n%s", want, s)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	resp := &types.Response{
		OriginalQuery:   "nothing",
		Recommendations: []string{rank.MsgNoResults},
	}
	var buf bytes.Buffer
	FormatTable(resp, &buf)
	if !strings.Contains(buf.String(), "No results") {
		t.Error("empty response should render 'No results'")
	}
}

func TestFormatJSONRoundTrip(t *testing.T) {
	resp := &types.Response{
		OriginalQuery: "q",
		Records: []types.Record{
			{Accession: "GSE1", Backend: types.BackendGDS, RelevanceScore: 0.7},
		},
	}

	var buf bytes.Buffer
	if err := FormatJSON(resp, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var parsed types.Response
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if parsed.Records[0].Accession != "GSE1" {
		t.Errorf("Accession = %q", parsed.Records[0].Accession)
	}
}

func TestResultFileRoundTrip(t *testing.T) {
	resp := &types.Response{
		OriginalQuery: "mouse alzheimer studies",
		Intent:        types.Intent{DataType: types.DataRNASeq, Organism: "mouse", Condition: "alzheimer", Confidence: 0.8},
		Strategies: []types.SearchStrategy{
			{Name: "direct_keywords", Query: "mouse alzheimer rna-sequencing", Backend: types.BackendSRA, Priority: 1},
		},
		Records: []types.Record{
			{ID: "1", Accession: "SRR9", Title: "hippocampus run", Organism: "Mus musculus",
				RecordType: types.RecordRun, Backend: types.BackendSRA, RelevanceScore: 0.9,
				Extra: map[string]string{"platform": "ILLUMINA"}},
		},
		Recommendations: []string{rank.MsgSRADownloads},
	}

	path := filepath.Join(t.TempDir(), "result.yaml")
	if err := WriteResultFile(path, resp); err != nil {
		t.Fatalf("WriteResultFile: %v", err)
	}

	rf, err := ReadResultFile(path)
	if err != nil {
		t.Fatalf("ReadResultFile: %v", err)
	}
	if rf.Timestamp.IsZero() {
		t.Error("Timestamp should be set on write")
	}

	got := rf.ToResponse()
	if got.OriginalQuery != resp.OriginalQuery {
		t.Errorf("OriginalQuery = %q", got.OriginalQuery)
	}
	if len(got.Records) != 1 || got.Records[0].Accession != "SRR9" {
		t.Errorf("Records = %+v", got.Records)
	}
	if got.Records[0].Extra["platform"] != "ILLUMINA" {
		t.Errorf("Extra round-trip failed: %v", got.Records[0].Extra)
	}
	if got.Intent.Condition != "alzheimer" {
		t.Errorf("Intent.Condition = %q", got.Intent.Condition)
	}
}

func TestLookupSetsDownloadURL(t *testing.T) {
	f := &fakeRetriever{
		lookup: types.Record{Accession: "GSE77", Backend: types.BackendGDS, Title: "t"},
	}
	a := newTestAgent(f)

	r, err := a.Lookup(context.Background(), "GSE77")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if r.DownloadURL != "https://www.ncbi.nlm.nih.gov/geo/query/acc.cgi?acc=GSE77" {
		t.Errorf("DownloadURL = %q", r.DownloadURL)
	}
}

func TestLookupErrorPassesThrough(t *testing.T) {
	f := &fakeRetriever{lookupErr: fmt.Errorf("accession X not found in any catalog")}
	a := newTestAgent(f)

	_, err := a.Lookup(context.Background(), "X")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v", err)
	}
}
