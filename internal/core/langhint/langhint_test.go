package langhint

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		script string
		lang   string
	}{
		{name: "empty", in: "", script: "", lang: ""},
		{name: "digits only", in: "2023 95 85", script: "", lang: ""},
		{name: "english claim", in: "The earth is flat and the government is hiding the truth.", script: "Latin", lang: ""},
		{name: "short greek has no lang", in: "Καλημέρα", script: "Greek", lang: ""},
		{name: "greek", in: "Η Γη είναι επίπεδη και η κυβέρνηση κρύβει την αλήθεια", script: "Greek", lang: "el"},
		{name: "arabic", in: "الأرض مسطحة والحكومة تخفي الحقيقة عن الناس", script: "Arabic", lang: "ar"},
		{name: "russian is ambiguous", in: "Земля плоская и правительство скрывает правду", script: "Cyrillic", lang: ""},
		{name: "japanese with kana", in: "地球は平らで政府が真実を隠しているという主張があります", script: "Hiragana", lang: "ja"},
		{name: "han majority with kana", in: "日本政府発表東京都知事選挙結果速報確定版公式情報の", script: "Han", lang: "ja"},
		{name: "han only is ambiguous", in: "中华人民共和国国家统计局发布最新经济数据显示增长", script: "Han", lang: ""},
		{name: "mixed favours majority", in: "Breaking news: Ballon d'Or 2023 winner is Messi (Μέσι)", script: "Latin", lang: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Detect(tt.in)
			if h.Script != tt.script || h.Lang != tt.lang {
				t.Fatalf("Detect(%q) = %+v, want script=%q lang=%q", tt.in, h, tt.script, tt.lang)
			}
		})
	}
}

func TestDetect_CountsLetters(t *testing.T) {
	if got := Detect("a1 b2 c3!").Letters; got != 3 {
		t.Fatalf("Letters = %d, want 3", got)
	}
}
