package turktext

import "testing"

func TestDecodeWindows1254_TurkishLetters(t *testing.T) {
	t.Parallel()

	raw := []byte{'K', 'A', 'R', 'A', 'B', 0xDC, 'K', ' ', 0xDD, 'D', 'M', 'A', 'N'}
	got := DecodeWindows1254(raw)
	if got != "KARABÜK İDMAN" {
		t.Fatalf("unexpected decode output: %q", got)
	}
}

func TestDecodeWindows1254_UndefinedByteFallsBack(t *testing.T) {
	t.Parallel()

	// 0x90 is undefined in the charmap table; the manual fallback must still
	// keep the surrounding Turkish bytes intact.
	raw := []byte{0xFE, 0x90, 0xFD}
	got := DecodeWindows1254(raw)
	if got == "" {
		t.Fatal("expected non-empty output")
	}
	runes := []rune(got)
	if runes[0] != 'ş' || runes[len(runes)-1] != 'ı' {
		t.Fatalf("diacritics dropped in fallback path: %q", got)
	}
}

func TestCleanHTML(t *testing.T) {
	t.Parallel()

	got := CleanHTML("<td>&nbsp;Kardemir&nbsp;<b>Karab&amp;K</b>  Spor </td>")
	if got != "Kardemir Karab&K Spor" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"KARABÜK İDMANYURDU", "Karabük İdmanyurdu"},
		{"SOĞUKSU GENÇLİK VE SPOR", "Soğuksu Gençlik ve Spor"},
		{"YENİŞEHİR FK", "Yenişehir FK"},
		{"DEMİR ÇELİK A.Ş.", "Demir Çelik A.Ş."},
		{"ESKİPAZAR-OVACIK SK", "Eskipazar-Ovacık SK"},
	}
	for _, tc := range cases {
		if got := TitleCase(tc.in); got != tc.want {
			t.Fatalf("TitleCase(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Karabük İdmanyurdu Spor Kulübü", "KARABUK IDMANYURDU SPOR"},
		{"Safranboluspor", "SAFRANBOLU SPOR"},
		{"Eflani Belediyespor", "EFLANI BELEDIYE SPOR"},
		{"Yenice Belediyesi Gençlik", "YENICE BELEDIYE GENCLIK"},
		{"Anadolu GSK", "ANADOLU"},
		{"  Ovacık  FK ", "OVACIK"},
	}
	for _, tc := range cases {
		if got := NormalizeKey(tc.in); got != tc.want {
			t.Fatalf("NormalizeKey(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}
