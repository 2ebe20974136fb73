package model

// Subject 课程（来自课程表）
type Subject struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	MajorCode    string `json:"majorCode"`
	TermRequired int    `json:"termRequired"` // 应修学期
}

// SubjectCatalog 课程目录，保持首次出现的顺序
type SubjectCatalog struct {
	order []string
	items map[string]*Subject
}

// NewSubjectCatalog 创建课程目录
func NewSubjectCatalog() *SubjectCatalog {
	return &SubjectCatalog{items: make(map[string]*Subject)}
}

// Put 写入课程；重复代码覆盖旧值但保留原位置
func (c *SubjectCatalog) Put(s *Subject) {
	key := CanonicalKey(s.Code)
	if _, ok := c.items[key]; !ok {
		c.order = append(c.order, key)
	}
	c.items[key] = s
}

// Get 按课程代码查询
func (c *SubjectCatalog) Get(code string) (*Subject, bool) {
	s, ok := c.items[CanonicalKey(code)]
	return s, ok
}

// All 按目录顺序返回全部课程
func (c *SubjectCatalog) All() []*Subject {
	out := make([]*Subject, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key])
	}
	return out
}

// Len 课程数量
func (c *SubjectCatalog) Len() int {
	return len(c.order)
}
