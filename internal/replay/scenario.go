package replay

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/racetrack/internal/core/models"
)

var (
	ErrEmptyScenario = errors.New("scenario has no cars")
	ErrUnknownCar    = errors.New("contact references unknown car")
	ErrDuplicateBody = errors.New("duplicate body id")
	ErrDuplicateCar  = errors.New("duplicate car id")
)

// Scenario is a recorded sequence of contacts against a tagged world.
type Scenario struct {
	Cars     []models.EntityID `yaml:"cars"`
	Bodies   []BodySpec        `yaml:"bodies"`
	Contacts []ContactSpec     `yaml:"contacts"`
}

type BodySpec struct {
	ID  models.EntityID `yaml:"id"`
	Tag string          `yaml:"tag"`
}

// ContactSpec is one collision-begin notification. Other may name an id that
// is not in Bodies; the contact is then delivered without a body.
type ContactSpec struct {
	Car   models.EntityID `yaml:"car"`
	Other models.EntityID `yaml:"other"`
}

func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open scenario %s", path)
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load scenario %s", path)
	}
	return s, nil
}

func Decode(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode yaml")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	if len(s.Cars) == 0 {
		return ErrEmptyScenario
	}
	cars := make(map[models.EntityID]struct{}, len(s.Cars))
	for _, c := range s.Cars {
		if _, dup := cars[c]; dup {
			return errors.Wrapf(ErrDuplicateCar, "car %d", c)
		}
		cars[c] = struct{}{}
	}
	bodies := make(map[models.EntityID]struct{}, len(s.Bodies))
	for _, b := range s.Bodies {
		if _, dup := bodies[b.ID]; dup {
			return errors.Wrapf(ErrDuplicateBody, "body %d", b.ID)
		}
		bodies[b.ID] = struct{}{}
	}
	for i, c := range s.Contacts {
		if _, ok := cars[c.Car]; !ok {
			return errors.Wrapf(ErrUnknownCar, "contact %d: car %d", i, c.Car)
		}
	}
	return nil
}

// World builds the host registry for the scenario's bodies.
func (s *Scenario) World() (*models.World, error) {
	w := models.NewWorld()
	for _, b := range s.Bodies {
		if err := w.Add(models.NewEntity(b.ID, b.Tag)); err != nil {
			return nil, errors.Wrapf(err, "body %d", b.ID)
		}
	}
	return w, nil
}
