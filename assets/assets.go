// Package assets holds the payloads handed to the external installers: the eduroam root certificate and the
// WLAN profile. Both are compiled into the binary and may be replaced by files named in the configuration.
package assets

import (
	"bytes"
	"crypto/x509"
	_ "embed" // this is needed for using the go:embed directive
	"encoding/xml"
	"fmt"
	"os"

	"github.com/hashicorp/go-rootcerts"
)

//go:embed eduroam-ca.der
var certificateDER []byte

//go:embed eduroam-profile.xml
var profileXML []byte

const (
	// DERExt is the extension given to materialized DER certificates.
	DERExt = ".der"
	// PEMExt is the extension given to materialized PEM certificate bundles.
	PEMExt = ".pem"
	// XMLExt is the extension given to materialized WLAN profiles.
	XMLExt = ".xml"
)

// Asset is an opaque payload that is written to a temporary file for exactly one external tool invocation.
type Asset struct {
	Name string
	Ext  string
	Data []byte
}

// Pattern returns the os.CreateTemp pattern used when materializing the asset.
func (a Asset) Pattern() string {
	return a.Name + "-*" + a.Ext
}

// Certificate returns the embedded root certificate in DER form.
func Certificate() Asset {
	return Asset{Name: "eduroam-ca", Ext: DERExt, Data: certificateDER}
}

// Profile returns the embedded WLAN profile document.
func Profile() Asset {
	return Asset{Name: "eduroam-profile", Ext: XMLExt, Data: profileXML}
}

// LoadCertificate reads a certificate from disk. PEM bundles are validated with go-rootcerts, anything else
// must parse as a single DER certificate.
func LoadCertificate(path string) (Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Asset{}, fmt.Errorf("unable to read certificate, path=%s: %w", path, err)
	}

	if bytes.Contains(data, []byte("-----BEGIN")) {
		if _, err := rootcerts.LoadCAFile(path); err != nil {
			return Asset{}, fmt.Errorf("invalid PEM certificate, path=%s: %w", path, err)
		}
		return Asset{Name: "eduroam-ca", Ext: PEMExt, Data: data}, nil
	}

	if _, err := x509.ParseCertificate(data); err != nil {
		return Asset{}, fmt.Errorf("invalid DER certificate, path=%s: %w", path, err)
	}
	return Asset{Name: "eduroam-ca", Ext: DERExt, Data: data}, nil
}

// LoadProfile reads a WLAN profile from disk and checks that it is a WLANProfile document with a name.
func LoadProfile(path string) (Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Asset{}, fmt.Errorf("unable to read profile, path=%s: %w", path, err)
	}
	if _, err := ProfileName(data); err != nil {
		return Asset{}, fmt.Errorf("invalid profile, path=%s: %w", path, err)
	}
	return Asset{Name: "eduroam-profile", Ext: XMLExt, Data: data}, nil
}

type wlanProfile struct {
	XMLName xml.Name `xml:"WLANProfile"`
	Name    string   `xml:"name"`
}

// ProfileName returns the <name> of a WLANProfile document.
func ProfileName(data []byte) (string, error) {
	var p wlanProfile
	if err := xml.Unmarshal(data, &p); err != nil {
		return "", err
	}
	if p.Name == "" {
		return "", fmt.Errorf("WLANProfile has no name")
	}
	return p.Name, nil
}
