package domain

import "fmt"

// ServiceKind is the closed set of services shown on the landing page.
type ServiceKind int

const (
	ServiceFullRepaint ServiceKind = iota + 1
	ServiceCustomGraphics
	ServiceCandyPaint
	ServiceChromeAndMetal
	ServiceRestoration
	ServiceCeramicCoating
)

type serviceMeta struct {
	key   string
	icon  string
	title string
}

var serviceTable = map[ServiceKind]serviceMeta{
	ServiceFullRepaint:    {key: "full_repaint", icon: "spray-can", title: "Full Repaint"},
	ServiceCustomGraphics: {key: "custom_graphics", icon: "palette", title: "Custom Graphics"},
	ServiceCandyPaint:     {key: "candy_paint", icon: "droplet", title: "Candy & Metallic Paint"},
	ServiceChromeAndMetal: {key: "chrome_and_metal", icon: "sparkles", title: "Chrome & Metal Finish"},
	ServiceRestoration:    {key: "restoration", icon: "wrench", title: "Classic Restoration"},
	ServiceCeramicCoating: {key: "ceramic_coating", icon: "shield", title: "Ceramic Coating"},
}

var serviceByKey = func() map[string]ServiceKind {
	m := make(map[string]ServiceKind, len(serviceTable))
	for k, meta := range serviceTable {
		m[meta.key] = k
	}
	return m
}()

// ParseServiceKind maps a content key to its kind.
func ParseServiceKind(key string) (ServiceKind, error) {
	k, ok := serviceByKey[key]
	if !ok {
		return 0, fmt.Errorf("unknown service kind %q", key)
	}
	return k, nil
}

func (k ServiceKind) String() string {
	return serviceTable[k].key
}

// Icon is the icon name used by the landing page.
func (k ServiceKind) Icon() string {
	return serviceTable[k].icon
}

// Title is the default heading for the service card.
func (k ServiceKind) Title() string {
	return serviceTable[k].title
}

func (k ServiceKind) MarshalText() ([]byte, error) {
	meta, ok := serviceTable[k]
	if !ok {
		return nil, fmt.Errorf("invalid service kind %d", int(k))
	}
	return []byte(meta.key), nil
}

func (k *ServiceKind) UnmarshalText(b []byte) error {
	parsed, err := ParseServiceKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
