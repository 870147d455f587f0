// Package prompt fills a form interactively. Fill walks the form's fields and
// asks one question per leaf through a Driver, checking each answer against
// the field's validators before accepting it. The survey-backed driver talks
// to a terminal; tests substitute their own Driver.
package prompt
