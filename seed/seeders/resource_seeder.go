package seeders

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/services/repositories"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// FileUploader puts a resource file into object storage.
type FileUploader interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (*minio.UploadInfo, error)
}

// ResourceSeeder loads the sample catalog
type ResourceSeeder struct {
	repo *repositories.ResourceRepository
}

func NewResourceSeeder(db *gorm.DB) *ResourceSeeder {
	return &ResourceSeeder{repo: repositories.NewResourceRepository(db)}
}

func SampleResources() []model.Resource {
	return []model.Resource{
		{ID: "res-marketing-101", Title: "Marketing Fundamentals", Type: model.ResourceLesson, Category: "Marketing",
			Description: "Positioning, segments and the marketing mix.", Duration: "45 min", XPReward: 150},
		{ID: "res-finance-quiz", Title: "Finance Basics Quiz", Type: model.ResourceQuiz, Category: "Finance",
			Description: "Check your understanding of statements and cash flow.", Duration: "15 min", XPReward: 200},
		{ID: "res-leadership-webinar", Title: "Leadership Webinar", Type: model.ResourceVideo, Category: "Leadership",
			Description: "Recorded session on leading small teams.", Duration: "60 min", URL: "https://videos.example.com/leadership", XPReward: 100},
		{ID: "res-ethics-module", Title: "Business Ethics Module", Type: model.ResourceLesson, Category: "Ethics",
			Description: "Case studies in everyday business decisions.", Duration: "30 min", XPReward: 150},
		{ID: "res-entrepreneurship-assessment", Title: "Entrepreneurship Assessment", Type: model.ResourceQuiz, Category: "Entrepreneurship",
			Description: "Twenty questions on starting a venture.", Duration: "20 min", XPReward: 250},
		{ID: "res-startup-talk", Title: "Guest Speaker: Startup Success", Type: model.ResourceVideo, Category: "Entrepreneurship",
			Description: "A founder on the first two years.", Duration: "50 min", URL: "https://videos.example.com/startup-success", XPReward: 100},
		{ID: "res-business-plan-template", Title: "Business Plan Template", Type: model.ResourceDownload, Category: "Entrepreneurship",
			Description: "Editable template with worked examples.", ObjectKey: "templates/business-plan.docx"},
		{ID: "res-budget-sheet", Title: "Personal Budget Sheet", Type: model.ResourceDownload, Category: "Finance",
			Description: "Spreadsheet for monthly budgeting.", ObjectKey: "templates/budget.xlsx"},
	}
}

func (s *ResourceSeeder) SeedResources(ctx context.Context) error {
	resources := SampleResources()
	if err := s.repo.Upsert(ctx, resources); err != nil {
		return err
	}
	log.Printf("Seeded %d resources", len(resources))
	return nil
}

// UploadFiles copies the file behind every downloadable sample resource from
// dir into object storage, keyed by its ObjectKey. Missing files are skipped.
func UploadFiles(ctx context.Context, uploader FileUploader, dir string) error {
	uploaded := 0
	for _, r := range SampleResources() {
		if r.ObjectKey == "" {
			continue
		}

		path := filepath.Join(dir, filepath.FromSlash(r.ObjectKey))
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			log.Printf("Skipping %s: %s not found", r.ID, path)
			continue
		}
		if err != nil {
			return err
		}

		info, err := f.Stat()
		if err != nil {
			f.Close()
			return err
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		_, err = uploader.UploadFile(ctx, r.ObjectKey, f, info.Size(), contentType)
		f.Close()
		if err != nil {
			return fmt.Errorf("upload %s: %w", r.ObjectKey, err)
		}
		uploaded++
	}

	log.Printf("Uploaded %d resource files", uploaded)
	return nil
}
