// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import "strings"

// cleanResponse strips markdown code fences and repairs common JSON
// mistakes made by small models.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return repairJSON(strings.TrimSpace(s))
}

// repairJSON attempts to fix common JSON formatting issues from LLM responses:
// missing opening quotes before object keys and trailing commas before a
// closing bracket or brace.
func repairJSON(s string) string {
	runes := []rune(s)
	fixed := make([]rune, 0, len(runes)+16)
	inString := false

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if ch == '"' && (i == 0 || runes[i-1] != '\\') {
			inString = !inString
			fixed = append(fixed, ch)
			continue
		}
		if inString {
			fixed = append(fixed, ch)
			continue
		}

		// Drop a trailing comma: `, ]` or `,}`
		if ch == ',' {
			j := i + 1
			for j < len(runes) && isSpace(runes[j]) {
				j++
			}
			if j < len(runes) && (runes[j] == ']' || runes[j] == '}') {
				continue
			}
		}

		fixed = append(fixed, ch)

		// After { or , look for a key missing its opening quote: `{de": [...]`
		if ch == '{' || ch == ',' {
			j := i + 1
			for j < len(runes) && isSpace(runes[j]) {
				fixed = append(fixed, runes[j])
				j++
			}
			k := j
			for k < len(runes) && (isLetter(runes[k]) || runes[k] == '_' || runes[k] == '-') {
				k++
			}
			if k > j && k+1 < len(runes) && runes[k] == '"' && runes[k+1] == ':' {
				fixed = append(fixed, '"')
				fixed = append(fixed, runes[j:k]...)
				// The closing quote at runes[k] is handled by the main loop.
				inString = true
				i = k - 1
				continue
			}
			i = j - 1
		}
	}

	return string(fixed)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
