package naming

import (
	"regexp"
	"strings"
)

const (
	segmentSeparator = " - "
	arcadePrefix     = "Arcade - "
)

var (
	tagPattern      = regexp.MustCompile(`\(([^)]+)\)`)
	numericPattern  = regexp.MustCompile(` \(\d+\)`)
	bracketsPattern = regexp.MustCompile(`\s*\(.*?\)`)
)

// HeaderInfo is what ParsePublisherAndPlatform derives from a catalog header.
type HeaderInfo struct {
	Publisher *string
	Platform  string
	Tags      []string
}

// ParsePublisherAndPlatform derives publisher, platform and tags from a header name such as
// "Nintendo - Game Boy (World) (Rev 1)". Segments equal to subset are ignored. When only
// one segment remains it names the platform and the publisher is unknown.
func ParsePublisherAndPlatform(name, version string, subset *string) HeaderInfo {
	name = strings.TrimPrefix(name, arcadePrefix)

	var segments []string
	for _, seg := range strings.Split(name, segmentSeparator) {
		if subset != nil && seg == *subset {
			continue
		}
		segments = append(segments, seg)
	}

	var publisher, platform string
	switch len(segments) {
	case 0:
	case 1:
		platform = segments[0]
	default:
		publisher = segments[0]
		platform = strings.Join(segments[1:], segmentSeparator)
	}

	if version != "" {
		platform = strings.ReplaceAll(platform, " ("+version+")", "")
	}

	var tags []string
	for {
		m := tagPattern.FindStringSubmatch(platform)
		if m == nil {
			break
		}
		tags = append(tags, m[1])
		if strings.Contains(platform, " "+m[0]) {
			platform = strings.Replace(platform, " "+m[0], "", 1)
		} else {
			platform = strings.Replace(platform, m[0], "", 1)
		}
	}

	info := HeaderInfo{Platform: strings.TrimSpace(platform), Tags: tags}
	if p := strings.TrimSpace(publisher); p != "" {
		info.Publisher = &p
	}
	return info
}

// SanitizeName turns a DAT file name into the catalog file display name by removing the
// version suffix, numeric parentheticals and the extension.
func SanitizeName(fileName, extension, version string) string {
	name := fileName
	if version != "" {
		name = strings.ReplaceAll(name, " ("+version+")", "")
	}
	name = numericPattern.ReplaceAllString(name, "")
	if extension != "" {
		name = strings.TrimSuffix(name, "."+strings.TrimPrefix(extension, "."))
	}
	return strings.TrimSpace(name)
}

// CleanDisplayName drops every parenthetical, so "Title (USA) (Rev 1)" becomes "Title".
func CleanDisplayName(name string) string {
	return strings.TrimSpace(bracketsPattern.ReplaceAllString(name, ""))
}
