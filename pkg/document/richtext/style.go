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

package richtext

// Style is the character formatting of a span. A nil field is absent and
// inherits from the block style; a non-nil field is an explicit value even when
// it points to false or an empty string.
//
// Styles are treated as immutable values: pointers may be shared between spans
// and are never written through.
type Style struct {
	Bold            *bool   `json:"bold,omitempty" bson:"bold,omitempty"`
	Italic          *bool   `json:"italic,omitempty" bson:"italic,omitempty"`
	Underline       *bool   `json:"underline,omitempty" bson:"underline,omitempty"`
	Strikethrough   *bool   `json:"strikethrough,omitempty" bson:"strikethrough,omitempty"`
	FontSize        *int    `json:"fontSize,omitempty" bson:"font_size,omitempty" validate:"omitempty,gt=0"`
	FontFamily      *string `json:"fontFamily,omitempty" bson:"font_family,omitempty"`
	Color           *string `json:"color,omitempty" bson:"color,omitempty" validate:"omitempty,css_color"`
	BackgroundColor *string `json:"backgroundColor,omitempty" bson:"background_color,omitempty" validate:"omitempty,css_color"`
}

// Bool returns a pointer to the given value, for building styles.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer to the given value, for building styles.
func Int(v int) *int {
	return &v
}

// String returns a pointer to the given value, for building styles.
func String(v string) *string {
	return &v
}

// IsEmpty returns true if no field of the style is set.
func (s Style) IsEmpty() bool {
	return s.Bold == nil && s.Italic == nil && s.Underline == nil && s.Strikethrough == nil &&
		s.FontSize == nil && s.FontFamily == nil && s.Color == nil && s.BackgroundColor == nil
}

// Merge returns a new style where the set fields of overlay replace the fields
// of this style. Fields absent from overlay are kept.
func (s Style) Merge(overlay Style) Style {
	merged := s
	if overlay.Bold != nil {
		merged.Bold = overlay.Bold
	}
	if overlay.Italic != nil {
		merged.Italic = overlay.Italic
	}
	if overlay.Underline != nil {
		merged.Underline = overlay.Underline
	}
	if overlay.Strikethrough != nil {
		merged.Strikethrough = overlay.Strikethrough
	}
	if overlay.FontSize != nil {
		merged.FontSize = overlay.FontSize
	}
	if overlay.FontFamily != nil {
		merged.FontFamily = overlay.FontFamily
	}
	if overlay.Color != nil {
		merged.Color = overlay.Color
	}
	if overlay.BackgroundColor != nil {
		merged.BackgroundColor = overlay.BackgroundColor
	}
	return merged
}

// Equal returns true if both styles set the same fields to the same values.
func (s Style) Equal(other Style) bool {
	return equalPtr(s.Bold, other.Bold) &&
		equalPtr(s.Italic, other.Italic) &&
		equalPtr(s.Underline, other.Underline) &&
		equalPtr(s.Strikethrough, other.Strikethrough) &&
		equalPtr(s.FontSize, other.FontSize) &&
		equalPtr(s.FontFamily, other.FontFamily) &&
		equalPtr(s.Color, other.Color) &&
		equalPtr(s.BackgroundColor, other.BackgroundColor)
}

// Intersect returns the fields that this style and other set to the same value.
func (s Style) Intersect(other Style) Style {
	var common Style
	if equalPtr(s.Bold, other.Bold) {
		common.Bold = s.Bold
	}
	if equalPtr(s.Italic, other.Italic) {
		common.Italic = s.Italic
	}
	if equalPtr(s.Underline, other.Underline) {
		common.Underline = s.Underline
	}
	if equalPtr(s.Strikethrough, other.Strikethrough) {
		common.Strikethrough = s.Strikethrough
	}
	if equalPtr(s.FontSize, other.FontSize) {
		common.FontSize = s.FontSize
	}
	if equalPtr(s.FontFamily, other.FontFamily) {
		common.FontFamily = s.FontFamily
	}
	if equalPtr(s.Color, other.Color) {
		common.Color = s.Color
	}
	if equalPtr(s.BackgroundColor, other.BackgroundColor) {
		common.BackgroundColor = s.BackgroundColor
	}
	return common
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
