package config

import (
	"bufio"
	"bytes"
	"os"
	"strings"
)

// OS families with a built-in cert directory.
const (
	FamilyRedHat = "RedHat"
	FamilyDebian = "Debian"
)

// OSReleasePath is where DetectOSFamily looks by default.
const OSReleasePath = "/etc/os-release"

// familyByID maps os-release ID / ID_LIKE tokens to a family.
var familyByID = map[string]string{
	"rhel":      FamilyRedHat,
	"centos":    FamilyRedHat,
	"fedora":    FamilyRedHat,
	"rocky":     FamilyRedHat,
	"almalinux": FamilyRedHat,
	"ol":        FamilyRedHat,
	"amzn":      FamilyRedHat,
	"debian":    FamilyDebian,
	"ubuntu":    FamilyDebian,
	"raspbian":  FamilyDebian,
	"linuxmint": FamilyDebian,
}

// DetectOSFamily reads an os-release file and returns the host's OS family,
// or "" when it cannot be determined.
func DetectOSFamily(path string) string {
	if path == "" {
		path = OSReleasePath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return osFamilyFromRelease(data)
}

func osFamilyFromRelease(data []byte) string {
	var id, idLike string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		k, v, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		v = unquote(strings.TrimSpace(v))
		switch k {
		case "ID":
			id = v
		case "ID_LIKE":
			idLike = v
		}
	}

	// ID wins over ID_LIKE; ID_LIKE is a space-separated preference list.
	for _, tok := range append([]string{id}, strings.Fields(idLike)...) {
		if fam, ok := familyByID[strings.ToLower(tok)]; ok {
			return fam
		}
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
