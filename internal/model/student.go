package model

// Student 学生（来自学生名册）
type Student struct {
	ID        string `json:"id"`
	Name      string `json:"name"`      // 名 + 空格 + 姓
	MajorCode string `json:"majorCode"` // 三段拼接的专业代码
	MajorName string `json:"majorName"`
}

// Roster 学生名册，保持首次出现的顺序
type Roster struct {
	order []string
	items map[string]*Student
}

// NewRoster 创建名册
func NewRoster() *Roster {
	return &Roster{items: make(map[string]*Student)}
}

// Put 写入学生；重复学号覆盖旧值但保留原位置
func (r *Roster) Put(s *Student) {
	key := CanonicalKey(s.ID)
	if _, ok := r.items[key]; !ok {
		r.order = append(r.order, key)
	}
	r.items[key] = s
}

// Get 按学号查询
func (r *Roster) Get(id string) (*Student, bool) {
	s, ok := r.items[CanonicalKey(id)]
	return s, ok
}

// All 按名册顺序返回全部学生
func (r *Roster) All() []*Student {
	out := make([]*Student, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.items[key])
	}
	return out
}

// IDs 按名册顺序返回学号
func (r *Roster) IDs() []string {
	out := make([]string, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.items[key].ID)
	}
	return out
}

// Len 学生数量
func (r *Roster) Len() int {
	return len(r.order)
}
