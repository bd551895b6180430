package suite

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

// Error code constants for site config loading.
const (
	ErrCodeSiteNotFound  = "E001" // Site file not found
	ErrCodeSiteFormat    = "E002" // Unrecognized site file extension
	ErrCodeSiteLoad      = "E003" // CUE load failed
	ErrCodeSiteBuild     = "E004" // CUE build failed
	ErrCodeSiteDecode    = "E005" // Decode into Params failed
	ErrCodeSiteMalformed = "E006" // Malformed YAML / unknown fields
)

// LoadError represents an error that occurred while loading a site file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSite reads toolchain Params from a site file.
//
// The format is selected by extension: ".cue" files are loaded through
// the CUE toolchain, ".yaml"/".yml" files are strict-decoded (unknown
// fields rejected, catching typos like "scalaVerson"). Values are not
// validated beyond decoding; bad paths surface at test execution time.
func LoadSite(path string) (Params, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Params{}, &LoadError{Code: ErrCodeSiteNotFound, Message: fmt.Sprintf("site file not found: %s", path)}
	}

	switch filepath.Ext(path) {
	case ".cue":
		return loadSiteCUE(path)
	case ".yaml", ".yml":
		return loadSiteYAML(path)
	default:
		return Params{}, &LoadError{
			Code:    ErrCodeSiteFormat,
			Message: fmt.Sprintf("unrecognized site file %s: want .cue, .yaml or .yml", path),
		}
	}
}

// loadSiteCUE loads Params from a single CUE file.
func loadSiteCUE(path string) (Params, error) {
	ctx := cuecontext.New()

	cfg := &load.Config{Dir: filepath.Dir(path)}
	instances := load.Instances([]string{filepath.Base(path)}, cfg)
	if len(instances) == 0 {
		return Params{}, &LoadError{Code: ErrCodeSiteLoad, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return Params{}, &LoadError{Code: ErrCodeSiteLoad, Message: fmt.Sprintf("loading CUE file: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return Params{}, &LoadError{
			Code:    ErrCodeSiteBuild,
			Message: fmt.Sprintf("building CUE value: %v", err),
			Pos:     value.Pos(),
		}
	}

	var params Params
	if err := value.Decode(&params); err != nil {
		return Params{}, &LoadError{
			Code:    ErrCodeSiteDecode,
			Message: fmt.Sprintf("decoding site config: %v", err),
			Pos:     value.Pos(),
		}
	}

	return params, nil
}

// loadSiteYAML loads Params from a YAML file with strict field checking.
func loadSiteYAML(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, &LoadError{Code: ErrCodeSiteNotFound, Message: fmt.Sprintf("reading site file: %v", err)}
	}

	var params Params
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&params); err != nil {
		return Params{}, &LoadError{Code: ErrCodeSiteMalformed, Message: fmt.Sprintf("parsing site file: %v", err)}
	}

	return params, nil
}
