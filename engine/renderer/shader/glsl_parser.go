package shader

import (
	"regexp"
	"strings"
)

var (
	// glslVersionRegex captures the value of the #version directive
	glslVersionRegex = regexp.MustCompile(`(?m)^\s*#version\s+([^\r\n]+)`)

	// glslMainRegex matches the void main() definition
	glslMainRegex = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(?:void)?\s*\)`)

	// glslAttributeRegex captures type and name of global vertex inputs, both the legacy
	// "attribute" form and the "in" form with an optional layout qualifier
	glslAttributeRegex = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:attribute|in)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*;`)

	// glslUniformRegex captures type and name of non-block uniform declarations
	glslUniformRegex = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*;`)
)

// parseGLSLVersion returns the #version value, e.g. "410 core", or an empty string.
func parseGLSLVersion(source string) string {
	if match := glslVersionRegex.FindStringSubmatch(stripComments(source)); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// hasGLSLMain reports whether the source defines void main().
func hasGLSLMain(source string) bool {
	return glslMainRegex.MatchString(stripComments(source))
}

// parseGLSLAttributes returns the vertex inputs declared at global scope in source order.
func parseGLSLAttributes(source string) []Variable {
	return collectVariables(glslAttributeRegex, source)
}

// parseGLSLUniforms returns the uniforms declared at global scope in source order.
func parseGLSLUniforms(source string) []Variable {
	return collectVariables(glslUniformRegex, source)
}

func collectVariables(re *regexp.Regexp, source string) []Variable {
	matches := re.FindAllStringSubmatch(stripComments(source), -1)
	vars := make([]Variable, 0, len(matches))
	for _, m := range matches {
		vars = append(vars, Variable{Type: m[1], Name: m[2]})
	}
	return vars
}
