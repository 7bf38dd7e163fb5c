package construct

import (
	"regexp"
	"strings"
)

// continuation joins two single-line JavaScript literals into one value.
const continuation = "\\n' +\n'"

// bareLineEnds lists characters after which a JavaScript line needs no
// terminator: blank lines, open brackets and operators continuing onto the
// next line.
const bareLineEnds = " \t\r\n,;{}[(+-*/%=&|\\:?<>!."

//nolint:gochecknoglobals // Compiled once, read-only.
var requirePattern = regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*)\s*=\s*require\(\s*['"]([^'"]+)['"]\s*\)\s*$`)

func renderTerminatorJS(r *Rendering) string {
	if r.Node.Opening != "\n" {
		return r.Open
	}
	if r.endsBlock() {
		return "\n"
	}
	prev := r.Before(3)
	switch {
	case prev == "",
		strings.ContainsAny(prev[len(prev)-1:], bareLineEnds),
		strings.HasSuffix(prev, `"""`):
		return "\n"
	default:
		return ";\n"
	}
}

func renderColonBlockJS(r *Rendering) string {
	indent := r.Indent()
	body := r.Body
	if strings.TrimSpace(body) == "" {
		body = ""
	} else {
		body = terminate(body)
	}

	closer, _ := r.closer()
	var closing string
	switch {
	case !r.Node.Terminated:
		if body == "" || strings.HasSuffix(body, "\n") {
			closing = indent + "}"
		} else {
			closing = "\n" + indent + "}"
		}
	case closer.Lead != "":
		closing = "\n" + indent + "} "
	case closer.Line == LineSame:
		closing = "\n" + indent + "}\n" + indent
	default:
		closing = "\n" + indent + "}"
	}
	return r.Open + body + closing
}

// renderColonHeaderJS leaves a header that ends without a colon as written.
func renderColonHeaderJS(r *Rendering) string {
	if closer, ok := r.closer(); !ok || closer.Foreign == "" {
		return r.Node.Opening + r.Body + r.Node.Closing
	}
	return r.Open + r.Body + r.Close
}

func renderBraceBlockPy(r *Rendering) string {
	indent := r.Indent()
	body := r.Body
	clauseFollows := r.Node.Terminated && r.Node.Closing != "}"
	if !clauseFollows {
		body = strings.TrimRight(body, " \t")
	}
	if strings.TrimSpace(body) == "" {
		body = indent + "    pass\n"
		if clauseFollows {
			body += indent
		}
	}
	return r.Open + body + r.Close
}

// terminate appends a statement terminator after the last non-blank
// character of body unless the last line already ends a statement or is a
// comment.
func terminate(body string) string {
	trimmed := strings.TrimRight(body, " \t\r\n")
	if trimmed == "" {
		return body
	}
	lastLine := strings.TrimSpace(trimmed[strings.LastIndexByte(trimmed, '\n')+1:])
	if strings.HasPrefix(lastLine, "//") || strings.ContainsAny(trimmed[len(trimmed)-1:], ";{}") {
		return body
	}
	return trimmed + ";" + body[len(trimmed):]
}

func renderImportJS(r *Rendering) string {
	fields := strings.Fields(r.Body)
	if len(fields) == 0 {
		return r.Open + r.Body + r.Close
	}
	module, alias := fields[0], moduleAlias(fields[0])
	if len(fields) >= 3 && fields[1] == "as" {
		alias = fields[2]
	}
	return r.Open + alias + " = require('" + module + "');" + r.Close
}

func renderVarDeclPy(r *Rendering) string {
	match := requirePattern.FindStringSubmatch(r.Body)
	if match == nil {
		return r.Open + r.Body + r.Close
	}
	alias, module := match[1], strings.TrimSuffix(match[2], ".js")
	stmt := "import " + module
	if alias != moduleAlias(module) {
		stmt += " as " + alias
	}
	return stmt + r.Close
}

func moduleAlias(module string) string {
	return module[strings.LastIndexByte(module, '.')+1:]
}

func renderBlockStringJS(r *Rendering) string {
	body := strings.ReplaceAll(quoteSingle(r.Body), "\n", continuation)
	return r.Open + body + r.Close
}

func renderSingleQuotedPy(r *Rendering) string {
	if !r.Node.hasChild(KindContinuation) {
		return r.Open + r.Body + r.Close
	}
	closing := ""
	if r.Node.Closing == "'" {
		closing = "'''"
	}
	return "'''" + unquoteSingle(r.Body) + closing
}

// quoteSingle escapes bare single quotes, leaving escape sequences intact.
func quoteSingle(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '\\' && i+1 < len(s):
			b.WriteByte(ch)
			b.WriteByte(s[i+1])
			i++
		case ch == '\'':
			b.WriteString(`\'`)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// unquoteSingle removes the escapes quoteSingle adds.
func unquoteSingle(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\\' && i+1 < len(s) {
			if s[i+1] != '\'' {
				b.WriteByte(ch)
			}
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}
