package oracle

import "alcyxob/virtual-coach/internal/domain"

// ParseAssessment decodes a model reply into swim and run levels.
func ParseAssessment(raw string) (*domain.LevelAssessment, error) {
	root, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	c := &checker{}
	c.onlyKeys("$", root, "swim_level", "run_level")
	levels := &domain.LevelAssessment{
		SwimLevel: level(c, root, "swim_level"),
		RunLevel:  level(c, root, "run_level"),
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return levels, nil
}

func level(c *checker, obj map[string]any, key string) domain.Level {
	s, ok := c.requiredString("$", obj, key)
	if !ok {
		return ""
	}
	l := domain.Level(s)
	if !l.Valid() {
		c.addf("$.%s: expected Beginner, Intermediate or Advanced, got %q", key, s)
	}
	return l
}
