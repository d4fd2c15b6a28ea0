package model

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// Manifest is the subset of composer.json this tool reads: the project name and
// the composer-patches configuration.
type Manifest struct {
	Name        string
	Patches     PatchIndex
	PatchesFile string
}

// PatchIndex maps a package name to its patch descriptors in declaration order.
// The order matters: when several descriptors appear in captured command
// output, the last declared match wins.
type PatchIndex map[string][]string

// For returns the patch descriptors declared for the package, or nil.
func (idx PatchIndex) For(name string) []string {
	if idx == nil {
		return nil
	}
	return idx[name]
}

// ParseManifest parses a composer.json document. Only extra.patches is decoded
// with order preserved; the rest of the manifest is ignored.
func ParseManifest(data []byte) (*Manifest, error) {
	var doc struct {
		Name  string `json:"name"`
		Extra struct {
			Patches     json.RawMessage `json:"patches"`
			PatchesFile string          `json:"patches-file"`
		} `json:"extra"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse composer.json")
	}

	m := &Manifest{
		Name:        doc.Name,
		PatchesFile: doc.Extra.PatchesFile,
	}

	if len(doc.Extra.Patches) > 0 {
		patches, err := decodePatchIndex(doc.Extra.Patches)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse extra.patches")
		}
		m.Patches = patches
	}

	return m, nil
}

// ParsePatchesFile parses an external patches document referenced by
// extra.patches-file ({"patches": {...}}, composer-patches format).
func ParsePatchesFile(data []byte) (PatchIndex, error) {
	var doc struct {
		Patches json.RawMessage `json:"patches"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse patches file")
	}
	if len(doc.Patches) == 0 {
		return nil, nil
	}

	patches, err := decodePatchIndex(doc.Patches)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse patches list")
	}
	return patches, nil
}

// decodePatchIndex walks the patches object token by token. encoding/json maps
// do not keep key order, and the descriptors (the keys of the per-package
// object) must stay in declaration order.
func decodePatchIndex(raw []byte) (PatchIndex, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	idx := PatchIndex{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read package name")
		}
		name, ok := tok.(string)
		if !ok {
			return nil, goerr.New("package name must be a string", goerr.V("token", tok))
		}

		descriptors, err := decodeDescriptors(dec)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read patch list", goerr.V("package", name))
		}
		idx[name] = descriptors
	}

	if _, err := dec.Token(); err != nil {
		return nil, goerr.Wrap(err, "unterminated patches object")
	}
	return idx, nil
}

func decodeDescriptors(dec *json.Decoder) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read JSON token")
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, goerr.New("patch list must be an object or array", goerr.V("token", tok))
	}

	// The array form carries bare patch URLs with no descriptors to scan for.
	if delim == '[' {
		for dec.More() {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
		_, err := dec.Token()
		return nil, err
	}

	if delim != '{' {
		return nil, goerr.New("unexpected JSON structure", goerr.V("got", delim.String()))
	}

	var descriptors []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		desc, ok := tok.(string)
		if !ok {
			return nil, goerr.New("patch descriptor must be a string", goerr.V("token", tok))
		}
		descriptors = append(descriptors, desc)

		// The value (patch URL or nested definition) is irrelevant here.
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return descriptors, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return goerr.Wrap(err, "failed to read JSON token")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return goerr.New("unexpected JSON structure",
			goerr.V("want", want.String()), goerr.V("got", tok))
	}
	return nil
}

func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); ok && (delim == '{' || delim == '[') {
		for dec.More() {
			if err := skipValue(dec); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
	}
	return nil
}
