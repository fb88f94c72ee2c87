package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "KOSPI closes higher", "KOSPI closes higher"},
		{"bold tags", "<b>환율</b> 급등", "환율 급등"},
		{"entities", "S&amp;P 500 &quot;rally&quot;", `S&P 500 "rally"`},
		{"whitespace runs", "  rates\n\t rise   again ", "rates rise again"},
		{"escaped tag", "&lt;b&gt;yield&lt;/b&gt; curve", "yield curve"},
		{"double escaped", "&amp;lt;i&amp;gt;bond", "bond"},
		{"only whitespace", " \n\t ", ""},
		{"nbsp entity", "a&nbsp;&nbsp;b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"<p>Fed &amp; BOK</p>\n\n rate   path",
		"&amp;amp;lt;x&amp;amp;gt;",
		"tab\tseparated text",
		"<a href=\"https://n.news.naver.com\">link</a> &#39;quoted&#39;",
		"1 &lt; 2 &gt; 0",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
