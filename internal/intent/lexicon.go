// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import "github.com/pdiddy/genoscope/pkg/types"

// entry maps one canonical category to the surface-text synonyms that
// select it. Table order is the tie-break rule: the first entry whose
// any synonym appears in the query wins, so broader categories must be
// listed after the ones they would otherwise shadow.
type entry struct {
	category string
	synonyms []string
}

var organisms = []entry{
	{"human", []string{"human", "homo sapiens", "people", "patient"}},
	{"mouse", []string{"mouse", "mice", "mus musculus", "murine"}},
	{"rat", []string{"rat", "rattus", "rodent"}},
	{"zebrafish", []string{"zebrafish", "danio rerio"}},
	{"drosophila", []string{"fly", "flies", "drosophila", "fruit fly"}},
	{"yeast", []string{"yeast", "saccharomyces", "cerevisiae"}},
}

var dataTypes = []entry{
	{string(types.DataRNASeq), []string{"rna-seq", "rna seq", "transcriptome", "expression", "gene expression"}},
	{string(types.DataDNASeq), []string{"dna-seq", "genome", "genomic", "whole genome", "dna"}},
	{string(types.DataProtein), []string{"protein", "proteome", "proteomic"}},
	{string(types.DataChIPSeq), []string{"chip-seq", "chromatin", "histone", "binding"}},
	{string(types.DataSingleCell), []string{"single cell", "scrna-seq", "single-cell"}},
}

var conditions = []entry{
	{"cancer", []string{"cancer", "tumor", "carcinoma", "oncology", "malignant", "breast cancer"}},
	{"alzheimer", []string{"alzheimer", "dementia", "neurodegenerative"}},
	{"diabetes", []string{"diabetes", "diabetic", "glucose", "insulin"}},
	{"covid", []string{"covid", "coronavirus", "sars-cov-2", "pandemic"}},
	{"heart-disease", []string{"cardiac", "heart", "cardiovascular", "coronary"}},
}

// stopWords are dropped during keyword extraction.
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "for": true, "in": true,
	"with": true, "of": true, "to": true, "from": true, "a": true,
	"an": true, "find": true, "show": true, "get": true,
}
