package services

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

// Column layout shared by export and import. Prices are major units.
var sheetHeaders = []string{
	"Slug", "Name", "Description", "Price", "Stock", "CategoryID",
	"Sizes", "Images", "Featured", "Active", "Rating", "NumReviews",
}

const (
	colSlug = iota
	colName
	colDescription
	colPrice
	colStock
	colCategory
	colSizes
	colImages
	colFeatured
	colActive
)

type SpreadsheetService struct {
	store models.Store
	admin *AdminService
}

type ImportReport struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Export writes every product, active or not, as one xlsx sheet.
func (s *SpreadsheetService) Export(ctx context.Context, w io.Writer) error {
	products, err := s.store.Products.ListAll(ctx)
	if err != nil {
		return err
	}
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return errors.Wrap(err, "add sheet")
	}
	header := sheet.AddRow()
	for _, h := range sheetHeaders {
		header.AddCell().SetString(h)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(models.FormatMinor(p.Price))
		row.AddCell().SetInt(p.StockQuantity)
		row.AddCell().SetString(p.CategoryID.String())
		row.AddCell().SetString(strings.Join(p.Sizes, ","))
		row.AddCell().SetString(strings.Join(p.Images, ","))
		row.AddCell().SetString(strconv.FormatBool(p.IsFeatured))
		row.AddCell().SetString(strconv.FormatBool(p.IsActive))
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetInt(p.NumReviews)
	}
	return errors.Wrap(file.Write(w), "write xlsx")
}

// Import upserts products from the first sheet, keyed by slug. A row without
// a slug is keyed by the slug its name derives to. Rows that fail validation
// are skipped and reported; the rest still apply.
func (s *SpreadsheetService) Import(ctx context.Context, r io.ReaderAt, size int64) (*ImportReport, error) {
	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, models.NewValidationError("Failed to parse Excel file", models.FieldError{Field: "file", Message: err.Error()})
	}
	if len(file.Sheets) == 0 || file.Sheets[0].MaxRow < 2 {
		return nil, models.NewValidationError("Excel file is empty or missing header row")
	}

	sheet := file.Sheets[0]
	report := &ImportReport{}
	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		if row == nil || len(row.Cells) < colActive {
			report.Skipped++
			continue
		}
		if err := s.importRow(ctx, row, report); err != nil {
			if !isUserError(err) {
				return nil, err
			}
			report.Skipped++
			report.Errors = append(report.Errors, "row "+strconv.Itoa(i+1)+": "+err.Error())
		}
	}
	log.Info().Int("created", report.Created).Int("updated", report.Updated).Int("skipped", report.Skipped).Msg("product import finished")
	return report, nil
}

func (s *SpreadsheetService) importRow(ctx context.Context, row *xlsx.Row, report *ImportReport) error {
	get := func(i int) string {
		if i < len(row.Cells) {
			return strings.TrimSpace(row.Cells[i].String())
		}
		return ""
	}
	name := get(colName)
	if name == "" {
		return models.NewValidationError("name is required")
	}
	price, err := models.ParseMajor(get(colPrice))
	if err != nil {
		return err
	}
	stock, err := strconv.Atoi(get(colStock))
	if err != nil {
		return models.NewValidationError("stock must be a whole number")
	}
	description, category := get(colDescription), get(colCategory)
	in := ProductInput{
		Name:          &name,
		Description:   &description,
		Price:         &price,
		StockQuantity: &stock,
		CategoryID:    &category,
		Sizes:         splitList(get(colSizes)),
		Images:        splitList(get(colImages)),
		IsFeatured:    parseBoolCell(get(colFeatured), false),
		IsActive:      parseBoolCell(get(colActive), true),
	}

	key := get(colSlug)
	if key == "" {
		key = slug.Make(name)
	}
	existing, err := s.store.Products.FindBySlug(ctx, key)
	switch {
	case err == nil:
		if _, err := s.admin.UpdateProduct(ctx, existing.ID, in); err != nil {
			return err
		}
		report.Updated++
	case errors.Is(err, models.ErrNotFound):
		if _, err := s.admin.CreateProduct(ctx, in); err != nil {
			return err
		}
		report.Created++
	default:
		return err
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return nonBlank(strings.Split(s, ","))
}

func parseBoolCell(s string, def bool) *bool {
	v := def
	if b, err := strconv.ParseBool(strings.ToLower(s)); err == nil {
		v = b
	}
	return &v
}

func isUserError(err error) bool {
	var verr *models.ValidationError
	return errors.As(err, &verr) || errors.Is(err, models.ErrConflict) || errors.Is(err, models.ErrNotFound)
}
