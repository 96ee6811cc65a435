package interview

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/abhishek622/interviewPrep/pkg/model"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// PromptTopicLimit is how many topics of a role are embedded in prompts.
const PromptTopicLimit = 5

type TopicSet struct {
	Technical  []string `yaml:"technical"`
	Behavioral []string `yaml:"behavioral"`
	Samples    struct {
		Technical  []string `yaml:"technical"`
		Behavioral []string `yaml:"behavioral"`
	} `yaml:"samples"`
}

// ForMode picks the half of the set used by mode. Anything that is not
// Technical is treated as Behavioral.
func (t TopicSet) ForMode(mode model.InterviewMode) []string {
	if mode == model.ModeTechnical {
		return t.Technical
	}
	return t.Behavioral
}

func (t TopicSet) SamplesForMode(mode model.InterviewMode) []string {
	if mode == model.ModeTechnical {
		return t.Samples.Technical
	}
	return t.Samples.Behavioral
}

type questionTemplate struct {
	Topic int    `yaml:"topic"`
	Text  string `yaml:"text"`
}

type catalogFile struct {
	Roles    map[model.Role]TopicSet `yaml:"roles"`
	Fallback struct {
		Technical  []questionTemplate `yaml:"technical"`
		Behavioral []questionTemplate `yaml:"behavioral"`
	} `yaml:"fallback"`
}

// Catalog is the static role taxonomy plus the fallback question templates.
// It is read-only after load and safe to share between sessions.
type Catalog struct {
	roles      map[model.Role]TopicSet
	technical  []questionTemplate
	behavioral []questionTemplate
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := LoadCatalog(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func LoadCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		roles:      f.Roles,
		technical:  f.Fallback.Technical,
		behavioral: f.Fallback.Behavioral,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if _, ok := c.roles[model.DefaultRole]; !ok {
		return fmt.Errorf("catalog has no topics for default role %q", model.DefaultRole)
	}
	if len(c.technical) == 0 || len(c.behavioral) == 0 {
		return fmt.Errorf("catalog needs fallback templates for both modes")
	}

	maxIndex := func(ts []questionTemplate) (int, error) {
		m := 0
		for i, t := range ts {
			if t.Topic < 0 {
				return 0, fmt.Errorf("fallback template %d: negative topic index", i)
			}
			if strings.Count(t.Text, "%s") != 1 {
				return 0, fmt.Errorf("fallback template %d: want exactly one %%s in %q", i, t.Text)
			}
			m = max(m, t.Topic)
		}
		return m, nil
	}
	techMax, err := maxIndex(c.technical)
	if err != nil {
		return fmt.Errorf("technical: %w", err)
	}
	behMax, err := maxIndex(c.behavioral)
	if err != nil {
		return fmt.Errorf("behavioral: %w", err)
	}

	for role, set := range c.roles {
		if len(set.Technical) <= techMax {
			return fmt.Errorf("role %q: %d technical topics, templates need %d", role, len(set.Technical), techMax+1)
		}
		if len(set.Behavioral) <= behMax {
			return fmt.Errorf("role %q: %d behavioral topics, templates need %d", role, len(set.Behavioral), behMax+1)
		}
	}
	return nil
}

// Resolve returns the topic set for role. Unknown roles resolve to the
// default role's set.
func (c *Catalog) Resolve(role model.Role) (model.Role, TopicSet) {
	if set, ok := c.roles[role]; ok {
		return role, set
	}
	return model.DefaultRole, c.roles[model.DefaultRole]
}

func (c *Catalog) Has(role model.Role) bool {
	_, ok := c.roles[role]
	return ok
}

func (c *Catalog) Topics(role model.Role, mode model.InterviewMode) []string {
	_, set := c.Resolve(role)
	return set.ForMode(mode)
}

// PromptTopics is the first PromptTopicLimit topics (or all, if fewer).
func (c *Catalog) PromptTopics(role model.Role, mode model.InterviewMode) []string {
	topics := c.Topics(role, mode)
	if len(topics) > PromptTopicLimit {
		return topics[:PromptTopicLimit]
	}
	return topics
}

// Samples are illustrative questions for a role. Unlike topics they do not
// fall back to the default role.
func (c *Catalog) Samples(role model.Role, mode model.InterviewMode) []string {
	set, ok := c.roles[role]
	if !ok {
		return nil
	}
	return set.SamplesForMode(mode)
}

func (c *Catalog) templates(mode model.InterviewMode) []questionTemplate {
	if mode == model.ModeTechnical {
		return c.technical
	}
	return c.behavioral
}

// FallbackQuestion picks the template for questionNumber round-robin and
// fills in its topic in lower case.
func (c *Catalog) FallbackQuestion(role model.Role, mode model.InterviewMode, questionNumber int) string {
	ts := c.templates(mode)
	topics := c.Topics(role, mode)

	idx := (questionNumber - 1) % len(ts)
	if idx < 0 {
		idx += len(ts)
	}
	t := ts[idx]
	return fmt.Sprintf(t.Text, strings.ToLower(topics[t.Topic]))
}
