package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/varoOP/seasonal/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileRepository reads and writes seasonal image definitions as YAML
type FileRepository struct {
	log zerolog.Logger
}

// NewFileRepository creates a new file-based repository
func NewFileRepository(log zerolog.Logger) *FileRepository {
	return &FileRepository{
		log: log.With().Str("module", "repository").Logger(),
	}
}

// fileImage mirrors domain.SeasonalImage with optional fields so that
// omitted keys fall back to the same defaults as a new record
type fileImage struct {
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	ImagePath   string `yaml:"image_path"`
	Enabled     *bool  `yaml:"enabled,omitempty"`
	Position    string `yaml:"position,omitempty"`
	Priority    int    `yaml:"priority"`
	Description string `yaml:"description,omitempty"`
}

type imageFile struct {
	Images []fileImage `yaml:"images"`
}

// Load parses the images listed in a YAML file. Dates are written as MM-DD.
func (r *FileRepository) Load(ctx context.Context, path string) ([]domain.SeasonalImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	return r.Decode(f)
}

// Decode parses images from YAML read from rd
func (r *FileRepository) Decode(rd io.Reader) ([]domain.SeasonalImage, error) {
	var file imageFile
	if err := yaml.NewDecoder(rd).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	images := make([]domain.SeasonalImage, 0, len(file.Images))
	for i, fi := range file.Images {
		img, err := fi.toDomain()
		if err != nil {
			return nil, fmt.Errorf("image #%d: %w", i+1, err)
		}
		images = append(images, img)
	}

	return images, nil
}

func (fi fileImage) toDomain() (domain.SeasonalImage, error) {
	img := domain.NewSeasonalImage()

	var err error
	if img.StartMonth, img.StartDay, err = domain.ParseDate(fi.Start); err != nil {
		return img, fmt.Errorf("start: %w", err)
	}
	if img.EndMonth, img.EndDay, err = domain.ParseDate(fi.End); err != nil {
		return img, fmt.Errorf("end: %w", err)
	}
	if img.Position, err = domain.ParsePosition(fi.Position); err != nil {
		return img, err
	}
	if fi.Enabled != nil {
		img.Enabled = *fi.Enabled
	}

	img.ImagePath = strings.TrimSpace(fi.ImagePath)
	img.Priority = fi.Priority
	img.Description = fi.Description

	return img, nil
}

// Store writes images to a YAML file
func (r *FileRepository) Store(ctx context.Context, path string, images []domain.SeasonalImage) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if err := r.Encode(f, images); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	r.log.Debug().Str("path", path).Int("count", len(images)).Msg("stored seasonal images")
	return nil
}

// Encode writes images as YAML to w
func (r *FileRepository) Encode(w io.Writer, images []domain.SeasonalImage) error {
	file := imageFile{Images: make([]fileImage, 0, len(images))}
	for _, img := range images {
		enabled := img.Enabled
		file.Images = append(file.Images, fileImage{
			Start:       img.StartDate(),
			End:         img.EndDate(),
			ImagePath:   img.ImagePath,
			Enabled:     &enabled,
			Position:    string(img.Position),
			Priority:    img.Priority,
			Description: img.Description,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	return enc.Close()
}
