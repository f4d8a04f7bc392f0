package models

// Region is one of the eight traditional regional groupings.
type Region struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Prefecture is a first-level administrative division.
// Region holds the region name, not its ID.
type Prefecture struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Regions is the fixed region catalog.
var Regions = []Region{
	{ID: "hokkaido", Name: "北海道"},
	{ID: "tohoku", Name: "東北"},
	{ID: "kanto", Name: "関東"},
	{ID: "chubu", Name: "中部"},
	{ID: "kinki", Name: "近畿"},
	{ID: "chugoku", Name: "中国"},
	{ID: "shikoku", Name: "四国"},
	{ID: "kyushu", Name: "九州"},
}

// Prefectures is the fixed prefecture catalog, ordered by code.
var Prefectures = []Prefecture{
	{Code: "01", Name: "北海道", Region: "北海道"},
	{Code: "02", Name: "青森県", Region: "東北"},
	{Code: "03", Name: "岩手県", Region: "東北"},
	{Code: "04", Name: "宮城県", Region: "東北"},
	{Code: "05", Name: "秋田県", Region: "東北"},
	{Code: "06", Name: "山形県", Region: "東北"},
	{Code: "07", Name: "福島県", Region: "東北"},
	{Code: "08", Name: "茨城県", Region: "関東"},
	{Code: "09", Name: "栃木県", Region: "関東"},
	{Code: "10", Name: "群馬県", Region: "関東"},
	{Code: "11", Name: "埼玉県", Region: "関東"},
	{Code: "12", Name: "千葉県", Region: "関東"},
	{Code: "13", Name: "東京都", Region: "関東"},
	{Code: "14", Name: "神奈川県", Region: "関東"},
	{Code: "15", Name: "新潟県", Region: "中部"},
	{Code: "16", Name: "富山県", Region: "中部"},
	{Code: "17", Name: "石川県", Region: "中部"},
	{Code: "18", Name: "福井県", Region: "中部"},
	{Code: "19", Name: "山梨県", Region: "中部"},
	{Code: "20", Name: "長野県", Region: "中部"},
	{Code: "21", Name: "岐阜県", Region: "中部"},
	{Code: "22", Name: "静岡県", Region: "中部"},
	{Code: "23", Name: "愛知県", Region: "中部"},
	{Code: "24", Name: "三重県", Region: "近畿"},
	{Code: "25", Name: "滋賀県", Region: "近畿"},
	{Code: "26", Name: "京都府", Region: "近畿"},
	{Code: "27", Name: "大阪府", Region: "近畿"},
	{Code: "28", Name: "兵庫県", Region: "近畿"},
	{Code: "29", Name: "奈良県", Region: "近畿"},
	{Code: "30", Name: "和歌山県", Region: "近畿"},
	{Code: "31", Name: "鳥取県", Region: "中国"},
	{Code: "32", Name: "島根県", Region: "中国"},
	{Code: "33", Name: "岡山県", Region: "中国"},
	{Code: "34", Name: "広島県", Region: "中国"},
	{Code: "35", Name: "山口県", Region: "中国"},
	{Code: "36", Name: "徳島県", Region: "四国"},
	{Code: "37", Name: "香川県", Region: "四国"},
	{Code: "38", Name: "愛媛県", Region: "四国"},
	{Code: "39", Name: "高知県", Region: "四国"},
	{Code: "40", Name: "福岡県", Region: "九州"},
	{Code: "41", Name: "佐賀県", Region: "九州"},
	{Code: "42", Name: "長崎県", Region: "九州"},
	{Code: "43", Name: "熊本県", Region: "九州"},
	{Code: "44", Name: "大分県", Region: "九州"},
	{Code: "45", Name: "宮崎県", Region: "九州"},
	{Code: "46", Name: "鹿児島県", Region: "九州"},
	{Code: "47", Name: "沖縄県", Region: "九州"},
}

// FindPrefecture looks up a catalog prefecture by code.
func FindPrefecture(code string) (Prefecture, bool) {
	for _, p := range Prefectures {
		if p.Code == code {
			return p, true
		}
	}
	return Prefecture{}, false
}
