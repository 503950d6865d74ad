package charset

// aliasTable maps canonical charset names to aliases seen in message headers.
// Keys and aliases are lower case. Not every name here has a transcoder,
// names without one simply don't resolve. The table is never modified.
var aliasTable = map[string][]string{
	"us-ascii":         {"ascii", "646", "us", "ansi_x3.4-1968", "iso646-us", "csascii"},
	"big5":             {"big5-tw", "csbig5", "cn-big5", "x-x-big5", "cp950", "950", "ms950"},
	"big5-hkscs":       {"big5hkscs", "hkscs"},
	"ibm037":           {"cp037", "037", "ebcdic-cp-us", "ebcdic-cp-ca", "ibm039"},
	"ibm424":           {"cp424", "ebcdic-cp-he"},
	"ibm437":           {"cp437", "437", "cspc8codepage437"},
	"ibm500":           {"cp500", "ebcdic-cp-be", "ebcdic-cp-ch"},
	"ibm775":           {"cp775"},
	"ibm850":           {"cp850", "850", "cspc850multilingual"},
	"ibm852":           {"cp852", "852"},
	"ibm855":           {"cp855", "855"},
	"ibm857":           {"cp857", "857"},
	"ibm858":           {"cp858", "858", "ibm00858"},
	"ibm860":           {"cp860", "860"},
	"ibm861":           {"cp861", "861", "cp-is"},
	"ibm862":           {"cp862", "862"},
	"ibm863":           {"cp863", "863"},
	"ibm864":           {"cp864"},
	"ibm865":           {"cp865", "865"},
	"ibm866":           {"cp866", "866", "csibm866"},
	"ibm869":           {"cp869", "869", "cp-gr"},
	"ibm1026":          {"cp1026"},
	"ibm1047":          {"cp1047"},
	"ibm01140":         {"cp1140", "ibm1140"},
	"windows-874":      {"cp874", "x-cp874", "tis-620", "tis620", "iso-8859-11"},
	"windows-1250":     {"cp1250", "x-cp1250", "1250"},
	"windows-1251":     {"cp1251", "x-cp1251", "1251", "win-1251"},
	"windows-1252":     {"cp1252", "x-cp1252", "1252"},
	"windows-1253":     {"cp1253", "x-cp1253", "1253"},
	"windows-1254":     {"cp1254", "x-cp1254", "1254"},
	"windows-1255":     {"cp1255", "x-cp1255", "1255"},
	"windows-1256":     {"cp1256", "x-cp1256", "windows1256", "1256"},
	"windows-1257":     {"cp1257", "x-cp1257", "1257"},
	"windows-1258":     {"cp1258", "x-cp1258", "1258"},
	"shift_jis":        {"csshiftjis", "shiftjis", "sjis", "s_jis", "x-sjis", "ms_kanji", "cp932", "932", "ms932", "mskanji", "ms-kanji", "windows-31j"},
	"shift_jis-2004":   {"shiftjis2004", "sjis_2004", "sjis2004"},
	"shift_jisx0213":   {"shiftjisx0213", "sjisx0213", "s_jisx0213"},
	"euc-jp":           {"eucjp", "euc_jp", "ujis", "u-jis", "x-euc-jp", "cseucpkdfmtjapanese"},
	"euc-jis-2004":     {"jisx0213", "eucjis2004", "euc_jis_2004"},
	"euc-jisx0213":     {"eucjisx0213", "euc_jisx0213"},
	"iso-2022-jp":      {"csiso2022jp", "iso2022jp", "iso2022_jp"},
	"iso-2022-jp-1":    {"iso2022jp-1", "iso2022_jp_1"},
	"iso-2022-jp-2":    {"iso2022jp-2", "iso2022_jp_2", "csiso2022jp2"},
	"iso-2022-jp-2004": {"iso2022jp-2004", "iso2022_jp_2004"},
	"iso-2022-jp-3":    {"iso2022jp-3", "iso2022_jp_3"},
	"iso-2022-jp-ext":  {"iso2022jp-ext", "iso2022_jp_ext"},
	"iso-2022-kr":      {"csiso2022kr", "iso2022kr", "iso2022_kr"},
	"euc-kr":           {"euckr", "euc_kr", "korean", "ksc5601", "ks_c_5601", "ks_c_5601-1987", "ksx1001", "ks_x_1001", "csksc56011987", "cp949", "949", "ms949", "uhc", "windows-949"},
	"johab":            {"cp1361", "ms1361"},
	"gb2312":           {"chinese", "csgb2312", "csiso58gb231280", "euc-cn", "euccn", "eucgb2312-cn", "gb2312-1980", "gb2312-80", "iso-ir-58"},
	"gbk":              {"936", "cp936", "ms936", "windows-936", "x-gbk"},
	"gb18030":          {"gb18030-2000", "gb-18030"},
	"hz-gb-2312":       {"hz", "hzgb", "hz-gb"},
	"iso-8859-1":       {"iso8859-1", "iso_8859-1", "iso8859_1", "latin_1", "8859", "cp819", "ibm819", "latin", "latin1", "latin-1", "l1", "iso-ir-100", "csisolatin1"},
	"iso-8859-2":       {"iso8859-2", "iso_8859-2", "iso8859_2", "latin2", "l2", "csisolatin2"},
	"iso-8859-3":       {"iso8859-3", "iso_8859-3", "iso8859_3", "latin3", "l3"},
	"iso-8859-4":       {"iso8859-4", "iso_8859-4", "iso8859_4", "latin4", "l4"},
	"iso-8859-5":       {"iso8859-5", "iso_8859-5", "iso8859_5", "cyrillic", "csisolatincyrillic"},
	"iso-8859-6":       {"iso8859-6", "iso_8859-6", "iso8859_6", "arabic", "asmo-708", "ecma-114"},
	"iso-8859-7":       {"iso8859-7", "iso_8859-7", "iso8859_7", "greek", "greek8", "elot_928"},
	"iso-8859-8":       {"iso8859-8", "iso_8859-8", "iso8859_8", "hebrew", "visual"},
	"iso-8859-8-i":     {"iso8859-8-i", "csiso88598i", "logical"},
	"iso-8859-9":       {"iso8859-9", "iso_8859-9", "iso8859_9", "latin5", "l5"},
	"iso-8859-10":      {"iso8859-10", "iso_8859-10", "iso8859_10", "latin6", "l6"},
	"iso-8859-13":      {"iso8859-13", "iso_8859-13", "iso8859_13", "latin7", "l7"},
	"iso-8859-14":      {"iso8859-14", "iso_8859-14", "iso8859_14", "latin8", "l8"},
	"iso-8859-15":      {"iso8859-15", "iso_8859-15", "iso8859_15", "latin9", "latin-9", "l9"},
	"iso-8859-16":      {"iso8859-16", "iso_8859-16", "iso8859_16", "latin10", "l10"},
	"koi8-r":           {"koi8r", "koi8", "cskoi8r", "koi8_r"},
	"koi8-u":           {"koi8u", "koi8_u", "koi8-ru"},
	"macintosh":        {"mac", "macroman", "mac_roman", "x-mac-roman", "csmacintosh"},
	"x-mac-cyrillic":   {"maccyrillic", "mac_cyrillic", "mac-cyrillic", "x-mac-ukrainian"},
	"x-mac-greek":      {"macgreek", "mac_greek"},
	"x-mac-iceland":    {"maciceland", "mac_iceland"},
	"x-mac-ce":         {"maclatin2", "mac_latin2", "maccentraleurope"},
	"x-mac-turkish":    {"macturkish", "mac_turkish"},
	"ptcp154":          {"csptcp154", "pt154", "cp154", "cyrillic-asian"},
	"viscii":           {"csviscii"},
	"tcvn":             {"tcvn5712-1", "tcvn-5712"},
	"iso-ir-111":       {"ecma-cyrillic", "csiso111ecmacyrillic"},
	"armscii-8":        {"armscii8"},
	"georgian-ps":      {"georgianps"},
	"utf-7":            {"u7", "utf7", "utf_7", "unicode-1-1-utf-7", "csunicode11utf7"},
	"utf-8":            {"u8", "utf", "utf8", "utf_8", "unicode-1-1-utf-8", "x-unicode20utf8"},
	"utf-16":           {"u16", "utf16", "utf_16", "ucs-2", "csunicode"},
	"utf-16be":         {"utf_16_be", "utf-16-be", "unicodefffe"},
	"utf-16le":         {"utf_16_le", "utf-16-le", "unicodefeff"},
	"utf-32":           {"u32", "utf32", "utf_32", "ucs-4"},
	"utf-32be":         {"utf_32_be", "utf-32-be"},
	"utf-32le":         {"utf_32_le", "utf-32-le"},
	"x-user-defined":   {"x-user-defined-charset"},
}

// aliasCanonical maps each canonical name and alias to its canonical name.
var aliasCanonical = buildCanonical()

func buildCanonical() map[string]string {
	m := map[string]string{}
	for canonical, aliases := range aliasTable {
		m[canonical] = canonical
		for _, a := range aliases {
			m[a] = canonical
		}
	}
	return m
}

// candidateNames returns the lower case names to match against the names of
// supported encodings: the name itself, followed by its canonical name and
// aliases if the name is in the alias table.
func candidateNames(name string) []string {
	l := []string{name}
	canonical, ok := aliasCanonical[name]
	if !ok {
		return l
	}
	if canonical != name {
		l = append(l, canonical)
	}
	for _, a := range aliasTable[canonical] {
		if a != name {
			l = append(l, a)
		}
	}
	return l
}
