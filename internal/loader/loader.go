package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leaksplit/leaksplit/internal/model"
)

// wireFinding mirrors model.Finding for decoding. Required fields are
// pointers so that an absent key can be told apart from an empty string.
type wireFinding struct {
	Description string   `json:"Description"`
	StartLine   int      `json:"StartLine" validate:"gte=0"`
	EndLine     int      `json:"EndLine" validate:"gte=0"`
	StartColumn int      `json:"StartColumn" validate:"gte=0"`
	EndColumn   int      `json:"EndColumn" validate:"gte=0"`
	Match       string   `json:"Match"`
	Secret      *string  `json:"Secret" validate:"required"`
	File        string   `json:"File"`
	SymlinkFile string   `json:"SymlinkFile"`
	Commit      string   `json:"Commit"`
	Entropy     float64  `json:"Entropy"`
	Author      string   `json:"Author"`
	Email       string   `json:"Email"`
	Date        string   `json:"Date"`
	Message     string   `json:"Message"`
	Tags        []string `json:"Tags"`
	RuleID      *string  `json:"RuleID" validate:"required"`
	Fingerprint *string  `json:"Fingerprint" validate:"required"`
}

// toFinding converts a validated wireFinding into a model.Finding.
func (w *wireFinding) toFinding() model.Finding {
	tags := w.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Finding{
		Description: w.Description,
		StartLine:   w.StartLine,
		EndLine:     w.EndLine,
		StartColumn: w.StartColumn,
		EndColumn:   w.EndColumn,
		Match:       w.Match,
		Secret:      *w.Secret,
		File:        w.File,
		SymlinkFile: w.SymlinkFile,
		Commit:      w.Commit,
		Entropy:     w.Entropy,
		Author:      w.Author,
		Email:       w.Email,
		Date:        w.Date,
		Message:     w.Message,
		Tags:        tags,
		RuleID:      *w.RuleID,
		Fingerprint: *w.Fingerprint,
	}
}

// Loader decodes gitleaks reports into findings.
type Loader struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used to report reading progress.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// log returns the configured logger, falling back to the process default
// at call time so that slog.SetDefault after construction is honored.
func (l *Loader) log() *slog.Logger {
	if l.logger == nil {
		return slog.Default()
	}
	return l.logger
}

// newValidator returns a validator that reports fields by their JSON key.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadFile reads the gitleaks report at path.
// The file is closed before LoadFile returns.
func (l *Loader) LoadFile(path string) ([]model.Finding, error) {
	l.log().Info("reading gitleaks report", "path", path)

	f, err := os.Open(path) //nolint:gosec // The report path is supplied by the user.
	if err != nil {
		return nil, fmt.Errorf("%w: open report: %w", model.ErrIO, err)
	}
	defer f.Close()

	findings, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return findings, nil
}

// Load decodes a gitleaks report from r.
//
// The document must be a single JSON array whose elements are finding
// objects carrying at least Secret, RuleID and Fingerprint. The order of
// the returned findings matches the array. On any failure no findings are
// returned.
func (l *Loader) Load(r io.Reader) ([]model.Finding, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", model.ErrDecode)
		}
		return nil, classify(err, "read document")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("%w: top-level value must be an array, got %s", model.ErrDecode, describeToken(tok))
	}

	findings := make([]model.Finding, 0)
	for index := 0; dec.More(); index++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, classify(err, fmt.Sprintf("finding %d", index))
		}
		var w wireFinding
		if err := decodeFinding(raw, &w); err != nil {
			return nil, classify(err, fmt.Sprintf("finding %d", index))
		}
		if err := l.validate.Struct(&w); err != nil {
			return nil, fmt.Errorf("%w: finding %d: %s", model.ErrDecode, index, describeValidation(err))
		}
		findings = append(findings, w.toFinding())
	}

	// Closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, classify(err, "read document")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, classify(err, "read document")
		}
		return nil, fmt.Errorf("%w: unexpected data after top-level array", model.ErrDecode)
	}

	l.log().Debug("decoded gitleaks report", "findings", len(findings))
	return findings, nil
}

// fieldNames maps the lower-cased JSON key of every wireFinding field to
// its exact spelling.
var fieldNames = func() map[string]string {
	names := make(map[string]string)
	t := reflect.TypeFor[wireFinding]()
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names[strings.ToLower(name)] = name
		}
	}
	return names
}()

// errKeyCasing reports a finding key that names a known field with the
// wrong letter case.
var errKeyCasing = errors.New("key casing")

// decodeFinding decodes a single array element into w. Keys must match the
// gitleaks field names exactly; encoding/json alone would also accept
// "secret" or "SECRET" for Secret.
func decodeFinding(raw json.RawMessage, w *wireFinding) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return err
	}
	for key := range keys {
		if want, ok := fieldNames[strings.ToLower(key)]; ok && want != key {
			return fmt.Errorf("%w: key %q must be spelled %q", errKeyCasing, key, want)
		}
	}
	return json.Unmarshal(raw, w)
}

// classify wraps a decoder error with ErrDecode when the document itself is
// at fault and with ErrIO when the underlying reader failed.
func classify(err error, what string) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("%w: %s: malformed JSON at offset %d: %w", model.ErrDecode, what, syntaxErr.Offset, err)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return fmt.Errorf("%w: %s: expected an object, got %s", model.ErrDecode, what, typeErr.Value)
		}
		return fmt.Errorf("%w: %s: field %s must be %s, got %s", model.ErrDecode, what, field, typeErr.Type, typeErr.Value)
	case errors.Is(err, errKeyCasing):
		return fmt.Errorf("%w: %s: %w", model.ErrDecode, what, err)
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return fmt.Errorf("%w: %s: unexpected end of document", model.ErrDecode, what)
	default:
		return fmt.Errorf("%w: %s: %w", model.ErrIO, what, err)
	}
}

// describeValidation turns validator errors into a short message such as
// "missing required field Secret".
func describeValidation(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, "missing required field "+e.Field())
		case "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be >= %s, got %v", e.Field(), e.Param(), e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s failed %q", e.Field(), e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// describeToken names a JSON token for error messages.
func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			return "object"
		}
		return string(v)
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", tok)
	}
}

var defaultLoader = New()

// Load decodes a gitleaks report from r using the default logger.
func Load(r io.Reader) ([]model.Finding, error) {
	return defaultLoader.Load(r)
}

// LoadFile reads the gitleaks report at path using the default logger.
func LoadFile(path string) ([]model.Finding, error) {
	return defaultLoader.LoadFile(path)
}
