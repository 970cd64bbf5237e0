package car

import "strings"

// Search 关键字搜索：对 type / brand / model / description 四个字段做
// 大小写不敏感的子串匹配，任一字段命中即保留。空关键字原样返回输入。
func Search(cars []Car, keyword string) []Car {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return cars
	}
	kw := strings.ToLower(keyword)

	out := make([]Car, 0, len(cars))
	for _, c := range cars {
		if containsFold(c.Type, kw) ||
			containsFold(c.Brand, kw) ||
			containsFold(c.Model, kw) ||
			containsFold(c.Description, kw) {
			out = append(out, c)
		}
	}
	return out
}

// FilterByMultiple 多选过滤：types 为空表示不限类型，brands 同理；
// 两个集合都为空时不过滤，直接返回输入。
func FilterByMultiple(cars []Car, types, brands []string) []Car {
	if len(types) == 0 && len(brands) == 0 {
		return cars
	}

	typeSet := toSet(types)
	brandSet := toSet(brands)

	out := make([]Car, 0, len(cars))
	for _, c := range cars {
		typeMatch := len(typeSet) == 0 || typeSet[c.Type]
		brandMatch := len(brandSet) == 0 || brandSet[c.Brand]
		if typeMatch && brandMatch {
			out = append(out, c)
		}
	}
	return out
}

// Suggestions 搜索建议：先对目录中的 type / brand / model 分别去重，
// 再按 类型（带 " (Type)" 标记）→ 品牌 → 车型 的顺序收集命中项，
// 最后对整个结果去一次重。空查询返回空列表而不是全量目录。
func Suggestions(cars []Car, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}
	}
	q := strings.ToLower(query)

	types := distinct(cars, func(c Car) string { return c.Type })
	brands := distinct(cars, func(c Car) string { return c.Brand })
	models := distinct(cars, func(c Car) string { return c.Model })

	suggestions := make([]string, 0, len(types)+len(brands)+len(models))
	for _, t := range types {
		if containsFold(t, q) {
			suggestions = append(suggestions, t+" (Type)")
		}
	}
	for _, b := range brands {
		if containsFold(b, q) {
			suggestions = append(suggestions, b)
		}
	}
	for _, m := range models {
		if containsFold(m, q) {
			suggestions = append(suggestions, m)
		}
	}
	return dedup(suggestions)
}

// AllTypes 返回目录中出现过的全部类型（按首次出现顺序去重），供筛选栏使用。
func AllTypes(cars []Car) []string {
	return distinct(cars, func(c Car) string { return c.Type })
}

// AllBrands 返回目录中出现过的全部品牌（按首次出现顺序去重）。
func AllBrands(cars []Car) []string {
	return distinct(cars, func(c Car) string { return c.Brand })
}

// containsFold 大小写不敏感子串匹配；kw 必须已经是小写。
func containsFold(s, kw string) bool {
	return strings.Contains(strings.ToLower(s), kw)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func distinct(cars []Car, field func(Car) string) []string {
	seen := make(map[string]bool, len(cars))
	out := make([]string, 0, len(cars))
	for _, c := range cars {
		v := field(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func dedup(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
