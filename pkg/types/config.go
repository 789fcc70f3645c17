package types

// ConversionMode selects which conversion strategy handles a document.
type ConversionMode string

const (
	// ModeAI sends the document to the generative model.
	ModeAI ConversionMode = "ai"
	// ModeLocal extracts text in-process and falls back to OCR for scanned pages.
	ModeLocal ConversionMode = "local"
)

// DefaultRemoteModel is the model used when none is configured.
const DefaultRemoteModel = "gemini-3-flash-preview"

// LoaderBackend identifies the PDF library used by the local path.
type LoaderBackend string

const (
	// BackendMuPDF parses, extracts and rasterizes pages through MuPDF.
	BackendMuPDF LoaderBackend = "mupdf"
	// BackendText is a pure-Go parser that reads the text layer only.
	// Scanned pages cannot be rendered and become placeholders.
	BackendText LoaderBackend = "text"
)

// LoaderConfig holds settings for the document loader.
type LoaderConfig struct {
	// Backend selects the PDF library: mupdf or text.
	Backend LoaderBackend `json:"backend" yaml:"backend" mapstructure:"backend"`
}

// OCRConfig holds settings for the recognition engine.
type OCRConfig struct {
	// Language is the Tesseract trained-data name (default "eng").
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// PageSegMode is the Tesseract page segmentation mode (default 3, fully automatic).
	PageSegMode int `json:"page_seg_mode" yaml:"page_seg_mode" mapstructure:"page_seg_mode"`
}

// RemoteConfig holds settings for the generative-model conversion path.
type RemoteConfig struct {
	// Model is the model identifier (e.g. "gemini-3-flash-preview").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// ConversionConfig groups all settings for a conversion run.
type ConversionConfig struct {
	// Mode selects the strategy: ai or local.
	Mode ConversionMode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// OutDir is the directory that receives the generated Markdown files.
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// Force overwrites Markdown files that already exist.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`

	Loader LoaderConfig `json:"loader" yaml:"loader" mapstructure:"loader"`
	OCR    OCRConfig    `json:"ocr" yaml:"ocr" mapstructure:"ocr"`
	Remote RemoteConfig `json:"remote" yaml:"remote" mapstructure:"remote"`
}

// Defaults fills zero-valued fields with their default values.
func (c *ConversionConfig) Defaults() {
	if c.Mode == "" {
		c.Mode = ModeAI
	}
	if c.OutDir == "" {
		c.OutDir = "markdown"
	}
	if c.Loader.Backend == "" {
		c.Loader.Backend = BackendMuPDF
	}
	if c.OCR.Language == "" {
		c.OCR.Language = "eng"
	}
	if c.OCR.PageSegMode == 0 {
		c.OCR.PageSegMode = 3
	}
	if c.Remote.Model == "" {
		c.Remote.Model = DefaultRemoteModel
	}
}
