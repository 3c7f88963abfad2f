package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secondbrain/internal/model"
	"secondbrain/internal/repository"
)

func newRAGFixture(t *testing.T) (*RAGService, *ExperienceService) {
	t.Helper()
	repo := repository.NewExperienceRepository(newTestDB(t))
	return NewRAGService(repo), NewExperienceService(repo)
}

func seedExperiences(t *testing.T, svc *ExperienceService) {
	t.Helper()
	ctx := context.Background()
	inputs := []CreateExperienceInput{
		{
			Title:    "Debugging tip",
			Content:  "Always check logs first.",
			Tags:     "debugging, logs",
			Category: model.CategoryTroubleshooting,
			Context:  "Useful for production incidents",
		},
		{
			Title:    "Schema review checklist",
			Content:  "Check index coverage before shipping.",
			Tags:     "sql,review",
			Category: model.CategoryBestPractice,
		},
		{
			Title:   "Untagged note",
			Content: "Remember to hydrate.",
		},
	}
	for _, in := range inputs {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}
}

func TestFormatDocument(t *testing.T) {
	doc := FormatDocument(model.Experience{
		ID:       7,
		Title:    "Debugging tip",
		Content:  "Always check logs first.",
		Tags:     " debugging , logs ,,",
		Category: model.CategoryTroubleshooting,
		Context:  "incidents",
	})

	assert.Equal(t, []string{"debugging", "logs"}, doc.Tags)
	assert.Equal(t, "past_experience", doc.Metadata.Type)
	assert.True(t, doc.Metadata.HasTags)
	assert.True(t, doc.Metadata.HasCategory)
	assert.True(t, doc.Metadata.HasContext)

	bare := FormatDocument(model.Experience{ID: 8, Title: "bare"})
	assert.Empty(t, bare.Tags)
	assert.False(t, bare.Metadata.HasTags)
	assert.False(t, bare.Metadata.HasCategory)
	assert.False(t, bare.Metadata.HasContext)
}

func TestRAGDocuments(t *testing.T) {
	rag, exps := newRAGFixture(t)
	seedExperiences(t, exps)

	docs, err := rag.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "Debugging tip", docs[0].Title, "oldest first")
}

func TestRAGSearchByTags(t *testing.T) {
	rag, exps := newRAGFixture(t)
	seedExperiences(t, exps)
	ctx := context.Background()

	docs, err := rag.SearchByTags(ctx, []string{"DEBUGGING"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Debugging tip", docs[0].Title)

	docs, err = rag.SearchByTags(ctx, []string{"logs", "sql"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = rag.SearchByTags(ctx, []string{"nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRAGSearchByCategory(t *testing.T) {
	rag, exps := newRAGFixture(t)
	seedExperiences(t, exps)

	docs, err := rag.SearchByCategory(context.Background(), "troubleshooting")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Debugging tip", docs[0].Title)
}

func TestRAGStatistics(t *testing.T) {
	rag, exps := newRAGFixture(t)
	seedExperiences(t, exps)

	stats, err := rag.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalExperiences)
	assert.Equal(t, 1, stats.WithContext)
	assert.Equal(t, 2, stats.WithTags)
	assert.Equal(t, 1, stats.CategoryDistribution["Troubleshooting"])
	assert.Equal(t, 1, stats.CategoryDistribution["Uncategorized"])
	assert.Equal(t, 3, stats.UniqueCategories)
	assert.Equal(t, 4, stats.UniqueTags)
	require.NotEmpty(t, stats.TopTags)
	assert.Equal(t, 1, stats.TopTags[0].Count)
}

func TestRAGExportJSON(t *testing.T) {
	rag, exps := newRAGFixture(t)
	seedExperiences(t, exps)

	path := filepath.Join(t.TempDir(), "export.json")
	export, err := rag.ExportJSON(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, export.TotalRecords)
	assert.Equal(t, "1.0", export.Version)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded RAGExport
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, export.TotalRecords, decoded.TotalRecords)
	require.Len(t, decoded.Data, 3)
	assert.Equal(t, "Debugging tip", decoded.Data[0].Title)
}

func TestPromptContext(t *testing.T) {
	docs := []RAGDocument{
		{
			Title:    "Debugging tip",
			Content:  "Always check logs first.",
			Tags:     []string{"debugging", "logs"},
			Category: "Troubleshooting",
			Context:  "incidents",
		},
		{Title: "Second"},
		{Title: "Third"},
	}

	out := PromptContext("How do I debug?", docs, 2)
	assert.Contains(t, out, "--- Experience 1 ---")
	assert.Contains(t, out, "Title: Debugging tip")
	assert.Contains(t, out, "Tags: debugging, logs")
	assert.Contains(t, out, "Context: incidents")
	assert.Contains(t, out, "User Query: How do I debug?")
	assert.Contains(t, out, "--- Experience 2 ---")
	assert.NotContains(t, out, "Third", "capped at max entries")
}
