package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"secondbrain/internal/model"
	"secondbrain/internal/repository"
)

const ragExportVersion = "1.0"

// RAGMetadata flags help a downstream retrieval pipeline weigh a document
// without re-parsing its fields.
type RAGMetadata struct {
	Type        string `json:"type"`
	Source      string `json:"source"`
	HasTags     bool   `json:"has_tags"`
	HasCategory bool   `json:"has_category"`
	HasContext  bool   `json:"has_context"`
}

// RAGDocument is an experience reshaped for LLM consumption: tags split
// into a list, plus retrieval metadata.
type RAGDocument struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Tags      []string    `json:"tags"`
	Category  string      `json:"category"`
	Context   string      `json:"context"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Metadata  RAGMetadata `json:"metadata"`
}

// RAGExport is the versioned envelope written by ExportJSON.
type RAGExport struct {
	ExportDate   time.Time     `json:"export_date"`
	TotalRecords int           `json:"total_records"`
	Version      string        `json:"version"`
	Data         []RAGDocument `json:"data"`
}

// TagCount pairs a tag with its usage count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// RAGStats summarizes the stored corpus for retrieval-system monitoring.
type RAGStats struct {
	TotalExperiences     int            `json:"total_experiences"`
	WithContext          int            `json:"experiences_with_context"`
	WithTags             int            `json:"experiences_with_tags"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	TopTags              []TagCount     `json:"top_tags"`
	UniqueCategories     int            `json:"unique_categories"`
	UniqueTags           int            `json:"unique_tags"`
}

// RAGService prepares stored experiences for retrieval-augmented generation.
// It only shapes and exports text; embedding and vector search live in the
// consuming pipeline.
type RAGService struct {
	repo *repository.ExperienceRepository
}

func NewRAGService(repo *repository.ExperienceRepository) *RAGService {
	return &RAGService{repo: repo}
}

// FormatDocument reshapes a single experience for LLM consumption.
func FormatDocument(exp model.Experience) RAGDocument {
	tags := SplitTags(exp.Tags)
	return RAGDocument{
		ID:        exp.ID,
		Title:     exp.Title,
		Content:   exp.Content,
		Tags:      tags,
		Category:  string(exp.Category),
		Context:   exp.Context,
		CreatedAt: exp.CreatedAt,
		UpdatedAt: exp.UpdatedAt,
		Metadata: RAGMetadata{
			Type:        "past_experience",
			Source:      "second_brain",
			HasTags:     len(tags) > 0,
			HasCategory: exp.Category != "",
			HasContext:  exp.Context != "",
		},
	}
}

// SplitTags turns a comma-separated tag string into trimmed, non-empty
// entries.
func SplitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Documents returns every stored experience as a RAG document, newest last.
func (s *RAGService) Documents(ctx context.Context) ([]RAGDocument, error) {
	exps, err := s.repo.List(ctx, model.ExperienceFilter{}, model.Sort{By: "created_at"})
	if err != nil {
		return nil, err
	}
	docs := make([]RAGDocument, len(exps))
	for i, exp := range exps {
		docs[i] = FormatDocument(exp)
	}
	return docs, nil
}

// ExportJSON writes the full corpus to path as an indented JSON export
// envelope and returns the export.
func (s *RAGService) ExportJSON(ctx context.Context, path string) (*RAGExport, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}

	export := &RAGExport{
		ExportDate:   nowUTC(),
		TotalRecords: len(docs),
		Version:      ragExportVersion,
		Data:         docs,
	}

	buf, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return nil, fmt.Errorf("write export %q: %w", path, err)
	}
	return export, nil
}

// PromptContext assembles a prompt context block from the most relevant
// documents, capped at max entries.
func PromptContext(query string, docs []RAGDocument, max int) string {
	if max > 0 && len(docs) > max {
		docs = docs[:max]
	}

	var b strings.Builder
	b.WriteString("Based on the following past experiences:\n")
	for i, doc := range docs {
		fmt.Fprintf(&b, "\n--- Experience %d ---\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", doc.Title)
		if doc.Category != "" {
			fmt.Fprintf(&b, "Category: %s\n", doc.Category)
		}
		if len(doc.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n", strings.Join(doc.Tags, ", "))
		}
		if doc.Context != "" {
			fmt.Fprintf(&b, "Context: %s\n", doc.Context)
		}
		fmt.Fprintf(&b, "\nContent:\n%s\n", doc.Content)
	}
	fmt.Fprintf(&b, "\nUser Query: %s\n", query)
	b.WriteString("Please provide a helpful response based on the above experiences.")
	return b.String()
}

// SearchByTags returns documents sharing at least one tag with the query,
// matched case-insensitively.
func (s *RAGService) SearchByTags(ctx context.Context, tags []string) ([]RAGDocument, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			want[t] = true
		}
	}

	var matched []RAGDocument
	for _, doc := range docs {
		for _, t := range doc.Tags {
			if want[strings.ToLower(t)] {
				matched = append(matched, doc)
				break
			}
		}
	}
	return matched, nil
}

// SearchByCategory returns documents in the given category, matched
// case-insensitively.
func (s *RAGService) SearchByCategory(ctx context.Context, category string) ([]RAGDocument, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}

	var matched []RAGDocument
	for _, doc := range docs {
		if strings.EqualFold(doc.Category, category) {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

// Statistics summarizes the corpus: category distribution and the ten most
// used tags.
func (s *RAGService) Statistics(ctx context.Context) (*RAGStats, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}

	stats := &RAGStats{
		TotalExperiences:     len(docs),
		CategoryDistribution: make(map[string]int),
	}
	tagCounts := make(map[string]int)

	for _, doc := range docs {
		category := doc.Category
		if category == "" {
			category = "Uncategorized"
		}
		stats.CategoryDistribution[category]++

		for _, tag := range doc.Tags {
			tagCounts[tag]++
		}
		if doc.Context != "" {
			stats.WithContext++
		}
		if len(doc.Tags) > 0 {
			stats.WithTags++
		}
	}

	stats.UniqueCategories = len(stats.CategoryDistribution)
	stats.UniqueTags = len(tagCounts)

	for tag, count := range tagCounts {
		stats.TopTags = append(stats.TopTags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(stats.TopTags, func(i, j int) bool {
		if stats.TopTags[i].Count != stats.TopTags[j].Count {
			return stats.TopTags[i].Count > stats.TopTags[j].Count
		}
		return stats.TopTags[i].Tag < stats.TopTags[j].Tag
	})
	if len(stats.TopTags) > 10 {
		stats.TopTags = stats.TopTags[:10]
	}

	return stats, nil
}
