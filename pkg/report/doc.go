// Package report renders a finished model-chain run as a plain-text, HTML
// or JSON summary: a per-timestamp table, the integrated AC energy, the
// peak AC point and an echo of the resolved configuration.
//
// Text and HTML output go through templates embedded in the package.
// Free-form fields (site name, system name, notes) are stripped of markup
// before they reach a template, so scenario files cannot inject markup
// into an HTML report.
package report
