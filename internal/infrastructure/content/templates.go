package content

import (
	"fmt"
	"strings"

	"github.com/doeshing/aimy-go/internal/domain"
)

// TemplateBody renders the offline artifact body for an analysis. Templates
// are selected by content type, then specialized by detected features.
func TemplateBody(text string, analysis domain.ContentAnalysis) string {
	switch analysis.Type {
	case domain.ContentHTML:
		return htmlTemplate(text, analysis)
	case domain.ContentPython:
		return pythonTemplate(text, analysis)
	case domain.ContentShell:
		return shellTemplate(text)
	default:
		return textTemplate(text, analysis)
	}
}

func htmlTemplate(text string, analysis domain.ContentAnalysis) string {
	title := titleCase(analysis.Purpose)
	body := htmlGenericBody
	for _, feature := range analysis.KeyFeatures {
		switch feature {
		case "mathematical":
			body = htmlCalculatorBody
		case "form":
			if body == htmlGenericBody {
				body = htmlFormBody
			}
		case "dashboard":
			if body == htmlGenericBody {
				body = htmlDashboardBody
			}
		}
	}
	return fmt.Sprintf(htmlShell, title, title, body, text)
}

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
button { padding: 0.5rem 1rem; margin: 0.2rem; cursor: pointer; }
input, textarea { padding: 0.5rem; margin: 0.2rem 0; width: 100%%; box-sizing: border-box; }
.card { border: 1px solid #ddd; border-radius: 8px; padding: 1rem; margin: 1rem 0; }
</style>
</head>
<body>
<h1>%s</h1>
%s
<footer><small>Generated from: %s</small></footer>
</body>
</html>
`

const htmlGenericBody = `<div class="card">
<p>This page was generated for you. Edit it to make it your own.</p>
</div>`

const htmlCalculatorBody = `<div class="card">
<input id="display" readonly>
<div id="keys"></div>
</div>
<script>
const keys = ["7","8","9","/","4","5","6","*","1","2","3","-","0",".","=","+","C"];
const pad = document.getElementById("keys");
const display = document.getElementById("display");
keys.forEach(k => {
  const b = document.createElement("button");
  b.textContent = k;
  b.onclick = () => {
    if (k === "C") { display.value = ""; return; }
    if (k === "=") {
      try { display.value = Function('"use strict";return (' + display.value + ')')(); }
      catch { display.value = "Error"; }
      return;
    }
    display.value += k;
  };
  pad.appendChild(b);
});
</script>`

const htmlFormBody = `<div class="card">
<form onsubmit="event.preventDefault(); document.getElementById('out').textContent = 'Submitted: ' + document.getElementById('name').value;">
<label>Name <input id="name" required></label>
<label>Message <textarea rows="4"></textarea></label>
<button type="submit">Submit</button>
</form>
<p id="out"></p>
</div>`

const htmlDashboardBody = `<div class="card">
<h2>Overview</h2>
<div id="stats"></div>
</div>
<script>
const stats = { Items: 42, Active: 7, Pending: 3 };
document.getElementById("stats").innerHTML =
  Object.entries(stats).map(([k, v]) => '<p><strong>' + k + ':</strong> ' + v + '</p>').join("");
</script>`

func pythonTemplate(text string, analysis domain.ContentAnalysis) string {
	return fmt.Sprintf(`#!/usr/bin/env python3
"""%s

Generated from: %s
"""


def main():
    print("Running: %s")


if __name__ == "__main__":
    main()
`, titleCase(analysis.Purpose), text, analysis.Purpose)
}

func shellTemplate(text string) string {
	return fmt.Sprintf(`#!/bin/sh
# Generated from: %s
echo "ready"
`, text)
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func textTemplate(text string, analysis domain.ContentAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleCase(analysis.Purpose))
	fmt.Fprintf(&b, "Request: %s\n", text)
	if len(analysis.KeyFeatures) > 0 {
		fmt.Fprintf(&b, "Features: %s\n", strings.Join(analysis.KeyFeatures, ", "))
	}
	return b.String()
}
