//go:build nosyntaxhighlight

package gui

import . "modernc.org/tk9.0"

func (a *Controller) highlightJSON(text *TextWidget, src string) {}
