package classifier

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Artifact is the on-disk description of a trained model.
type Artifact struct {
	Kind         string      `json:"kind" yaml:"kind"`
	Name         string      `json:"name" yaml:"name"`
	FeatureNames []string    `json:"feature_names_in,omitempty" yaml:"feature_names_in,omitempty"`
	Inputs       []InputSpec `json:"inputs" yaml:"inputs"`
	Scaler       *Scaler     `json:"scaler,omitempty" yaml:"scaler,omitempty"`

	// logistic
	Coefficients []float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Intercept    float64   `json:"intercept,omitempty" yaml:"intercept,omitempty"`

	// random_forest
	Trees []Tree `json:"trees,omitempty" yaml:"trees,omitempty"`
}

// Load reads, decodes and validates the artifact at path. Any failure is a
// *LoadError naming the path.
func Load(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: LoadMissing, Err: err}
	}

	art, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, &LoadError{Path: path, Kind: LoadCorrupt, Err: err}
	}

	m, err := art.Build(path, fingerprint(data))
	if err != nil {
		return nil, &LoadError{Path: path, Kind: LoadIncompatible, Err: err}
	}
	return m, nil
}

// Decode parses artifact bytes. ext selects YAML for ".yaml"/".yml" and
// JSON otherwise.
func Decode(data []byte, ext string) (*Artifact, error) {
	art := &Artifact{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(art); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(art); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	return art, nil
}

// Build validates the artifact and turns it into a scoring model.
func (a *Artifact) Build(path, sum string) (Model, error) {
	enc, err := newEncoder(a.FeatureNames, a.Inputs, a.Scaler)
	if err != nil {
		return nil, err
	}
	info := Info{Name: a.Name, Path: path, Fingerprint: sum}
	if info.Name == "" {
		info.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	switch a.Kind {
	case KindLogistic:
		return newLogistic(info, enc, a.Coefficients, a.Intercept)
	case KindRandomForest:
		return newForest(info, enc, a.Trees)
	case "":
		return nil, fmt.Errorf("artifact has no kind")
	default:
		return nil, fmt.Errorf("unsupported model kind %q", a.Kind)
	}
}

// Fingerprint returns the SHA-256 of the artifact file.
func Fingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fingerprint(data), nil
}

func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
