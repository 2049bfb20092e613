// Package community handles crowd-sourced corrections to candidate data.
// Reports are persisted and, when a Notion review database is configured,
// mirrored there so the moderation team can triage them.
package community

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/whoisrunning/civic-research/internal/model"
	"github.com/whoisrunning/civic-research/internal/store"
)

// NotionClient is the subset of the Notion API used for the review queue.
type NotionClient interface {
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// Service validates and records community error reports.
type Service struct {
	store    store.Store
	notion   NotionClient
	reportDB string
}

// NewService creates a community report service. notion may be nil, in
// which case reports are only written to the store.
func NewService(st store.Store, notion NotionClient, reportDB string) *Service {
	return &Service{store: st, notion: notion, reportDB: reportDB}
}

// SubmitReport validates and stores an error report. The Notion review
// page is created best-effort: a Notion failure is logged but does not
// fail the submission once the report is persisted.
func (s *Service) SubmitReport(ctx context.Context, r *model.ErrorReport) error {
	if err := validate(r); err != nil {
		return err
	}

	if err := s.store.CreateErrorReport(ctx, r); err != nil {
		return eris.Wrap(err, "community: store report")
	}

	zap.L().Info("community error report received",
		zap.String("report_id", r.ID),
		zap.String("candidate_id", r.CandidateID),
		zap.String("error_type", r.ErrorType))

	if s.notion != nil && s.reportDB != "" {
		if _, err := s.notion.CreatePage(ctx, s.reviewPage(r)); err != nil {
			zap.L().Warn("community: notion review page failed",
				zap.String("report_id", r.ID),
				zap.Error(err))
		}
	}

	return nil
}

// ListReports returns recent reports for moderation tooling.
func (s *Service) ListReports(ctx context.Context, limit, offset int) ([]model.ErrorReport, error) {
	return s.store.ListErrorReports(ctx, limit, offset)
}

func validate(r *model.ErrorReport) error {
	switch {
	case strings.TrimSpace(r.CandidateID) == "":
		return eris.New("community: candidate id is required")
	case strings.TrimSpace(r.CandidateName) == "":
		return eris.New("community: candidate name is required")
	case strings.TrimSpace(r.ErrorType) == "":
		return eris.New("community: error type is required")
	case strings.TrimSpace(r.Description) == "":
		return eris.New("community: description is required")
	}
	return nil
}

// reviewPage builds the Notion page for the moderation queue. The title is
// the candidate name; everything else lands in rich_text and select
// properties so the database stays filterable by error type.
func (s *Service) reviewPage(r *model.ErrorReport) *notionapi.PageCreateRequest {
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: r.CandidateName}}},
		},
		"Error Type": notionapi.SelectProperty{
			Select: notionapi.Option{Name: r.ErrorType},
		},
		"Description":  richText(r.Description),
		"Candidate ID": richText(r.CandidateID),
	}
	if r.Source != "" {
		props["Source"] = richText(r.Source)
	}
	if r.Email != "" {
		props["Reporter Email"] = richText(r.Email)
	}

	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.reportDB),
		},
		Properties: props,
	}
}

func richText(content string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}
