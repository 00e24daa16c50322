// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAccountID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid", input: "123456789012", want: true},
		{name: "too short", input: "12345678901", want: false},
		{name: "too long", input: "1234567890123", want: false},
		{name: "letters", input: "12345678901a", want: false},
		{name: "empty", input: "", want: false},
		{name: "unset sentinel", input: "0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAccountID(tt.input))
		})
	}
}

func TestValidKMSKeyARN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "valid",
			input: "arn:aws:kms:us-east-1:123456789012:key/1234abcd-12ab-34cd-56ef-1234567890ab",
			want:  true,
		},
		{
			name:  "alias not accepted",
			input: "arn:aws:kms:us-east-1:123456789012:alias/my-key",
			want:  false,
		},
		{
			name:  "missing account",
			input: "arn:aws:kms:us-east-1::key/1234abcd-12ab-34cd-56ef-1234567890ab",
			want:  false,
		},
		{
			name:  "bare key id",
			input: "1234abcd-12ab-34cd-56ef-1234567890ab",
			want:  false,
		},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidKMSKeyARN(tt.input))
		})
	}
}
