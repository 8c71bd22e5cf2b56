package ruleset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/shortname/pkg/shortname/internalerr"
)

//go:embed default.yaml
var defaultYAML []byte

// Ruleset holds the recognizer configuration: word lists and patterns the
// classifier and abbreviation engine use. It is immutable once compiled.
type Ruleset struct {
	Version              string   `yaml:"version" validate:"required"`
	MaxLength            int      `yaml:"max_length" validate:"required,gt=0"`
	BrandMinLength       int      `yaml:"brand_min_length" validate:"gte=1"`
	MinSingularizeLength int      `yaml:"min_singularize_length" validate:"gte=2"`
	BrandPattern         string   `yaml:"brand_pattern" validate:"required"`
	NumberPattern        string   `yaml:"number_pattern" validate:"required"`
	Units                []string `yaml:"units" validate:"required,dive,required"`
	DimensionSeparators  []string `yaml:"dimension_separators" validate:"dive,required"`
	ProductTypes         []string `yaml:"product_types" validate:"dive,required"`
	Packaging            []string `yaml:"packaging" validate:"dive,required"`
	SideSizeQualifiers   []string `yaml:"side_size_qualifiers" validate:"dive,required"`
	MaterialQualifiers   []string `yaml:"material_qualifiers" validate:"dive,required"`
	SingularExceptions   []string `yaml:"singular_exceptions" validate:"dive,required"`

	brandRe      *regexp.Regexp
	numberRe     *regexp.Regexp
	units        map[string]struct{}
	separators   map[string]struct{}
	productTypes map[string]int // phrase -> word count
	maxTypeLen   int
	packaging    map[string]struct{}
	sideSize     map[string]struct{}
	material     map[string]struct{}
	exceptions   map[string]struct{}
}

var validate = validator.New()

// Default returns the built-in ruleset.
func Default() *Ruleset {
	rs, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("ruleset: embedded default is invalid: %v", err))
	}
	return rs
}

// Load reads and compiles a ruleset from a YAML file.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", path, err)
	}
	return rs, nil
}

// Parse decodes, validates and compiles a YAML ruleset.
func Parse(data []byte) (*Ruleset, error) {
	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := rs.compile(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Validate checks field constraints and that both patterns compile.
func (r *Ruleset) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, strings.Join(fields, "; "))
		}
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if _, err := regexp.Compile(r.BrandPattern); err != nil {
		return fmt.Errorf("%w: brand_pattern: %v", internalerr.ErrInvalidConfig, err)
	}
	if _, err := regexp.Compile(r.NumberPattern); err != nil {
		return fmt.Errorf("%w: number_pattern: %v", internalerr.ErrInvalidConfig, err)
	}
	return nil
}

func (r *Ruleset) compile() error {
	if err := r.Validate(); err != nil {
		return err
	}

	r.brandRe = regexp.MustCompile(r.BrandPattern)
	r.numberRe = regexp.MustCompile(r.NumberPattern)
	r.units = toSet(r.Units)
	r.separators = toSet(r.DimensionSeparators)
	r.packaging = toSet(r.Packaging)
	r.sideSize = toSet(r.SideSizeQualifiers)
	r.material = toSet(r.MaterialQualifiers)
	r.exceptions = toSet(r.SingularExceptions)

	r.productTypes = make(map[string]int, len(r.ProductTypes))
	r.maxTypeLen = 1
	for _, pt := range r.ProductTypes {
		words := strings.Fields(strings.ToLower(pt))
		if len(words) == 0 {
			continue
		}
		r.productTypes[strings.Join(words, " ")] = len(words)
		if len(words) > r.maxTypeLen {
			r.maxTypeLen = len(words)
		}
	}
	return nil
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
