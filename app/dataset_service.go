package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"ppi/domain/core"
	"ppi/domain/dataset"
	"ppi/internal"
	"ppi/internal/analysis"
	"ppi/internal/errors"
	"ppi/internal/naming"
	"ppi/internal/privacy"
	"ppi/internal/registry"
	"ppi/internal/report"
	"ppi/internal/rows"
	"ppi/ports"
)

// DatasetService wires uploads, the alias registry and the analysis engine.
// Reads resolve a name through its alias spellings, first in memory and then
// in storage; row edits and deletes only act on datasets already in memory.
type DatasetService struct {
	registry *registry.Registry
	storage  ports.FileStorage
	parser   ports.SheetParser
	writer   ports.SheetWriter
	uploads  ports.UploadRepository
	logger   *internal.Logger
}

// NewDatasetService creates the service. uploads may be nil when no catalog
// database is configured.
func NewDatasetService(reg *registry.Registry, storage ports.FileStorage, parser ports.SheetParser, writer ports.SheetWriter, uploads ports.UploadRepository) *DatasetService {
	return &DatasetService{
		registry: reg,
		storage:  storage,
		parser:   parser,
		writer:   writer,
		uploads:  uploads,
		logger:   internal.NewComponentLogger("DatasetService"),
	}
}

// Ingest stores an uploaded file, parses it and registers the dataset under
// the aliases of both its original and stored names. A file that stores but
// fails to parse stays in storage.
func (s *DatasetService) Ingest(ctx context.Context, originalName string, r io.Reader) (*dataset.Upload, error) {
	if originalName == "" {
		return nil, errors.InvalidInput("missing file name")
	}

	info, err := s.storage.Store(ctx, originalName, r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store upload")
	}

	ds, err := s.parse(ctx, info.Name)
	if err != nil {
		return nil, errors.Wrap(err, "upload stored, but failed to parse")
	}

	s.registry.Register(originalName, info.Name, ds)

	upload := &dataset.Upload{
		ID:           core.NewID(),
		OriginalName: originalName,
		StoredName:   info.Name,
		Size:         info.Size,
		RowCount:     ds.Len(),
		HeaderCount:  len(ds.Headers()),
		UploadedAt:   info.UploadedAt,
	}
	if s.uploads != nil {
		if err := s.uploads.Create(ctx, upload); err != nil {
			s.logger.Warn("catalog entry for %s not recorded: %v", info.Name, err)
		}
	}

	s.logger.Info("saved %s as %s, %d rows in memory", originalName, info.Name, upload.RowCount)
	return upload, nil
}

// Load resolves name to a dataset, reading it from storage and registering
// it when no alias is in memory yet.
func (s *DatasetService) Load(ctx context.Context, name string) (*dataset.Dataset, error) {
	if name == "" {
		return nil, errors.InvalidInput("missing list name")
	}
	if ds, err := s.Resident(name); err == nil {
		return ds, nil
	}

	stored, err := s.findStored(ctx, name)
	if err != nil {
		return nil, err
	}

	ds, err := s.parse(ctx, stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read list %q from file", name)
	}
	s.registry.Register(stored, name, ds)
	s.logger.Debug("loaded %q from %s (%d rows)", name, stored, ds.Len())
	return ds, nil
}

// Resident resolves name against the in-memory registry only.
func (s *DatasetService) Resident(name string) (*dataset.Dataset, error) {
	if name == "" {
		return nil, errors.InvalidInput("missing list name")
	}
	for _, c := range naming.Candidates(name) {
		if ds, err := s.registry.Resolve(c); err == nil {
			return ds, nil
		}
	}
	return nil, core.NewNotFoundError("list in memory", name)
}

// Lists enumerates every alias binding.
func (s *DatasetService) Lists() []registry.AliasEntry {
	return s.registry.List()
}

// Rows returns the identity-free projection of a dataset.
func (s *DatasetService) Rows(ctx context.Context, name string) (dataset.Projection, error) {
	ds, err := s.Load(ctx, name)
	if err != nil {
		return dataset.Projection{}, err
	}
	return privacy.ProjectDataset(ds), nil
}

// AppendRow adds a row, loading the dataset from storage if needed. order is
// the row's key order as submitted, used when the row sets the headers.
func (s *DatasetService) AppendRow(ctx context.Context, name string, row dataset.Row, order ...string) (int, error) {
	if row == nil {
		return 0, core.ErrInvalidPayload
	}
	ds, err := s.Load(ctx, name)
	if err != nil {
		return 0, err
	}
	return rows.Append(ds, row, order...)
}

// UpdateRow replaces the given headers of one row of an in-memory dataset
// and returns the row's identity-free view.
func (s *DatasetService) UpdateRow(name string, index int, row dataset.Row) (dataset.Row, error) {
	ds, err := s.Resident(name)
	if err != nil {
		return nil, err
	}
	if err := rows.Update(ds, index, row); err != nil {
		return nil, err
	}
	updated, ok := ds.Row(index)
	if !ok {
		return nil, core.NewIndexError(index, ds.Len())
	}
	return updated.Conform(privacy.VisibleHeaders(ds.Headers())), nil
}

// DeleteRow removes one row of an in-memory dataset.
func (s *DatasetService) DeleteRow(name string, index int) error {
	ds, err := s.Resident(name)
	if err != nil {
		return err
	}
	return rows.Delete(ds, index)
}

// Analyze runs the keyword classifier.
func (s *DatasetService) Analyze(ctx context.Context, name string) (dataset.MedicalAnalysis, error) {
	ds, err := s.Load(ctx, name)
	if err != nil {
		return dataset.MedicalAnalysis{}, err
	}
	return analysis.ClassifyDataset(ds), nil
}

// Dependencies runs the correlation engine.
func (s *DatasetService) Dependencies(ctx context.Context, name string) (dataset.DependencyReport, error) {
	ds, err := s.Load(ctx, name)
	if err != nil {
		return dataset.DependencyReport{}, err
	}
	return analysis.CorrelateDataset(ds), nil
}

// Profile summarises the numeric columns.
func (s *DatasetService) Profile(ctx context.Context, name string) ([]dataset.ColumnProfile, error) {
	ds, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return analysis.ProfileDataset(ds)
}

// Report builds the composite report.
func (s *DatasetService) Report(ctx context.Context, name string) (*report.Report, error) {
	ds, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return report.Build(ctx, name, ds)
}

// Export writes the identity-free projection of a dataset as a workbook.
func (s *DatasetService) Export(ctx context.Context, name string, w io.Writer) error {
	proj, err := s.Rows(ctx, name)
	if err != nil {
		return err
	}
	return s.writer.Write(ctx, w, proj.Headers, proj.Rows)
}

// ListFiles lists stored files, with their original names when the catalog
// knows them. Catalog failures leave the listing unannotated.
func (s *DatasetService) ListFiles(ctx context.Context) ([]dataset.FileInfo, error) {
	files, err := s.storage.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploads directory")
	}
	if s.uploads == nil {
		return files, nil
	}
	for i := range files {
		upload, err := s.uploads.GetByStoredName(ctx, files[i].Name)
		if core.IsNotFoundError(err) {
			continue
		}
		if err != nil {
			s.logger.Warn("catalog lookup for %s failed: %v", files[i].Name, err)
			break
		}
		files[i].OriginalName = upload.OriginalName
	}
	return files, nil
}

// Uploads lists catalog entries, newest first. Without a catalog it is empty.
func (s *DatasetService) Uploads(ctx context.Context, limit, offset int) ([]*dataset.Upload, error) {
	if s.uploads == nil {
		return []*dataset.Upload{}, nil
	}
	return s.uploads.List(ctx, limit, offset)
}

// OpenFile opens a stored file. With exact set only name itself is tried,
// otherwise every alias spelling of name. The resolved name is returned.
func (s *DatasetService) OpenFile(ctx context.Context, name string, exact bool) (io.ReadCloser, string, error) {
	if name == "" {
		return nil, "", errors.InvalidInput("missing file name")
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	stored := name
	if !exact {
		var err error
		if stored, err = s.findStored(ctx, name); err != nil {
			return nil, "", err
		}
	}
	rc, err := s.storage.Open(ctx, stored)
	if err != nil {
		return nil, "", err
	}
	return rc, stored, nil
}

// DeleteFile removes a stored file, then every alias of the dataset it
// backed, then its catalog entry.
func (s *DatasetService) DeleteFile(ctx context.Context, storedName string) (int, error) {
	if err := s.storage.Delete(ctx, storedName); err != nil {
		return 0, err
	}
	evicted := s.registry.Evict(storedName)
	if s.uploads != nil {
		if err := s.uploads.DeleteByStoredName(ctx, storedName); err != nil {
			s.logger.Warn("catalog entry for %s not removed: %v", storedName, err)
		}
	}
	s.logger.Info("deleted %s, evicted %d aliases", storedName, evicted)
	return evicted, nil
}

func (s *DatasetService) findStored(ctx context.Context, name string) (string, error) {
	for _, c := range naming.Candidates(name) {
		ok, err := s.storage.Exists(ctx, c)
		if err != nil {
			return "", errors.Wrap(err, "failed to check storage")
		}
		if ok {
			return c, nil
		}
	}
	return "", core.NewNotFoundError("list", name)
}

func (s *DatasetService) parse(ctx context.Context, stored string) (*dataset.Dataset, error) {
	start := time.Now()
	rc, err := s.storage.Open(ctx, stored)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	ds, err := s.parser.Parse(ctx, stored, rc)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, core.NewParseError(stored, fmt.Errorf("parser returned no dataset"))
	}
	s.logger.Debug("parsed %s in %s", stored, time.Since(start))
	return ds, nil
}
