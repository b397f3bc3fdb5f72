/*
 * Copyright 2026 The Inkwell Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package richtext provides the rich text model of text blocks: an ordered
// sequence of styled spans, and the pure functions that edit it.
//
// Every position is a plain text offset counted in UTF-16 code units, the unit
// browsers use for selections. Functions never mutate their arguments; they
// return new Content values.
package richtext

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
)

// Span is a run of text sharing one style.
type Span struct {
	Text  string `json:"text" bson:"text"`
	Style Style  `json:"style" bson:"style"`
}

// Len returns the length of this span in UTF-16 code units.
func (s Span) Len() int {
	return textLen(s.Text)
}

// Content is the rich text of a block. Concatenating the texts of its spans in
// order yields the plain text of the block.
type Content struct {
	Spans []Span `json:"spans" bson:"spans" validate:"min=1,dive"`
}

// NewEmpty creates a content with a single empty span, so that there is always
// a span to anchor the cursor on.
func NewEmpty() Content {
	return Content{Spans: []Span{{Text: "", Style: Style{}}}}
}

// FromString creates a content with a single span covering the given text.
func FromString(text string, style Style) Content {
	return Content{Spans: []Span{{Text: text, Style: style}}}
}

// PlainText returns the concatenation of the span texts of the given content.
func PlainText(content Content) string {
	var sb strings.Builder
	for _, span := range content.Spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// Len returns the length of the plain text of the given content in UTF-16
// code units.
func Len(content Content) int {
	length := 0
	for _, span := range content.Spans {
		length += span.Len()
	}
	return length
}

// PlainText returns the plain text of this content.
func (c Content) PlainText() string {
	return PlainText(c)
}

// Len returns the length of this content in UTF-16 code units.
func (c Content) Len() int {
	return Len(c)
}

// IsEmpty returns true if this content has no text.
func (c Content) IsEmpty() bool {
	for _, span := range c.Spans {
		if span.Text != "" {
			return false
		}
	}
	return true
}

// DeepCopy copies the span list of this content.
func (c Content) DeepCopy() Content {
	return Content{Spans: slices.Clone(c.Spans)}
}

// Marshal returns a compact JSON encoding of this content for debugging.
func (c Content) Marshal() string {
	values := make([]string, 0, len(c.Spans))
	for _, span := range c.Spans {
		val, err := json.Marshal(span.Text)
		if err != nil {
			val = []byte(`""`)
		}
		if span.Style.IsEmpty() {
			values = append(values, fmt.Sprintf(`{"val":%s}`, val))
			continue
		}

		attrs, err := json.Marshal(span.Style)
		if err != nil {
			attrs = []byte(`{}`)
		}
		values = append(values, fmt.Sprintf(`{"attrs":%s,"val":%s}`, attrs, val))
	}

	return fmt.Sprintf("[%s]", strings.Join(values, ","))
}

// Insert returns a new content with text inserted at the given position as a
// span of its own with the given style. The inserted span is never merged into
// its neighbours.
//
// The position is clamped to [0, Len(content)]. At a span boundary the text is
// attached to the earlier span. An empty span at the insertion point, like the
// placeholder of NewEmpty, is replaced by the inserted span.
func Insert(content Content, position int, text string, style Style) Content {
	spans := spansOf(content)
	if text == "" {
		return Content{Spans: spans}
	}

	position = clamp(position, 0, Len(content))
	current, target, posInSpan := 0, 0, 0
	for i, span := range spans {
		length := span.Len()
		if current+length >= position {
			target = i
			posInSpan = position - current
			break
		}
		current += length
	}

	inserted := Span{Text: text, Style: style}
	targetSpan := spans[target]
	at := byteOffset(targetSpan.Text, posInSpan)

	switch {
	case targetSpan.Text == "":
		spans[target] = inserted
	case at == 0:
		spans = slices.Insert(spans, target, inserted)
	case at == len(targetSpan.Text):
		spans = slices.Insert(spans, target+1, inserted)
	default:
		before := Span{Text: targetSpan.Text[:at], Style: targetSpan.Style}
		after := Span{Text: targetSpan.Text[at:], Style: targetSpan.Style}
		spans = slices.Replace(spans, target, target+1, before, inserted, after)
	}

	return Content{Spans: spans}
}

// ApplyFormatting returns a new content where every character in [start, end)
// has the given style overlaid onto its own style. Characters outside the range
// keep their style and the plain text never changes.
//
// The range is clamped to [0, Len(content)]. An empty range returns a copy of
// the content. Spans crossing a range boundary are split; zero-length pieces
// are not emitted.
func ApplyFormatting(content Content, start, end int, style Style) Content {
	length := Len(content)
	start, end = clamp(start, 0, length), clamp(end, 0, length)
	if start >= end {
		return content.DeepCopy()
	}

	spans := make([]Span, 0, len(content.Spans)+2)
	current := 0
	for _, span := range content.Spans {
		spanStart := current
		spanEnd := current + span.Len()
		current = spanEnd

		if spanEnd <= start || spanStart >= end {
			spans = append(spans, span)
			continue
		}
		if spanStart >= start && spanEnd <= end {
			spans = append(spans, Span{Text: span.Text, Style: span.Style.Merge(style)})
			continue
		}

		from := byteOffset(span.Text, max(start, spanStart)-spanStart)
		to := byteOffset(span.Text, min(end, spanEnd)-spanStart)
		if from > 0 {
			spans = append(spans, Span{Text: span.Text[:from], Style: span.Style})
		}
		if from < to {
			spans = append(spans, Span{Text: span.Text[from:to], Style: span.Style.Merge(style)})
		}
		if to < len(span.Text) {
			spans = append(spans, Span{Text: span.Text[to:], Style: span.Style})
		}
	}

	return Content{Spans: spans}
}

// Delete returns a new content without the characters in [start, end). Spans
// emptied by the deletion are dropped; when nothing is left the result is
// NewEmpty.
func Delete(content Content, start, end int) Content {
	length := Len(content)
	start, end = clamp(start, 0, length), clamp(end, 0, length)
	if start >= end {
		return Content{Spans: spansOf(content)}
	}

	spans := make([]Span, 0, len(content.Spans))
	current := 0
	for _, span := range content.Spans {
		spanStart := current
		spanEnd := current + span.Len()
		current = spanEnd

		if spanEnd <= start || spanStart >= end {
			spans = append(spans, span)
			continue
		}

		from := byteOffset(span.Text, max(start, spanStart)-spanStart)
		to := byteOffset(span.Text, min(end, spanEnd)-spanStart)
		if text := span.Text[:from] + span.Text[to:]; text != "" {
			spans = append(spans, Span{Text: text, Style: span.Style})
		}
	}

	if len(spans) == 0 {
		return NewEmpty()
	}
	return Content{Spans: spans}
}

// Compact returns a new content where adjacent spans with equal styles are
// merged and empty spans are dropped. The plain text and the style of every
// character are preserved.
func Compact(content Content) Content {
	spans := make([]Span, 0, len(content.Spans))
	for _, span := range content.Spans {
		if span.Text == "" {
			continue
		}
		if last := len(spans) - 1; last >= 0 && spans[last].Style.Equal(span.Style) {
			spans[last].Text += span.Text
			continue
		}
		spans = append(spans, span)
	}

	if len(spans) == 0 {
		return NewEmpty()
	}
	return Content{Spans: spans}
}

// StyleAt returns the style that text typed at the given position continues:
// the style of the character before it, or of the first character when the
// position is at the start.
func StyleAt(content Content, position int) Style {
	position = clamp(position, 0, Len(content))

	current := 0
	var fallback *Span
	for i := range content.Spans {
		span := &content.Spans[i]
		if span.Text == "" {
			continue
		}
		if fallback == nil {
			fallback = span
		}

		spanEnd := current + span.Len()
		if position > current && position <= spanEnd {
			return span.Style
		}
		current = spanEnd
	}

	if fallback != nil {
		return fallback.Style
	}
	if len(content.Spans) > 0 {
		return content.Spans[0].Style
	}
	return Style{}
}

// CommonStyle returns the style fields shared by every character in
// [start, end). An empty range returns StyleAt(content, start).
func CommonStyle(content Content, start, end int) Style {
	length := Len(content)
	start, end = clamp(start, 0, length), clamp(end, 0, length)
	if start >= end {
		return StyleAt(content, start)
	}

	var common *Style
	current := 0
	for _, span := range content.Spans {
		spanStart := current
		spanEnd := current + span.Len()
		current = spanEnd

		if spanStart == spanEnd || spanEnd <= start || spanStart >= end {
			continue
		}
		if common == nil {
			style := span.Style
			common = &style
			continue
		}
		*common = common.Intersect(span.Style)
	}

	if common == nil {
		return Style{}
	}
	return *common
}

// spansOf returns a copy of the spans of the given content, or the single
// placeholder span when it has none.
func spansOf(content Content) []Span {
	if len(content.Spans) == 0 {
		return NewEmpty().Spans
	}
	return slices.Clone(content.Spans)
}

// textLen returns the length of the given text in UTF-16 code units.
func textLen(text string) int {
	length := 0
	for _, r := range text {
		length += utf16.RuneLen(r)
	}
	return length
}

// byteOffset returns the byte index in text of the given UTF-16 offset. An
// offset inside a surrogate pair moves to the end of that rune.
func byteOffset(text string, offset int) int {
	if offset <= 0 {
		return 0
	}

	units := 0
	for i, r := range text {
		if units >= offset {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(text)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
