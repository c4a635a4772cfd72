package entity

// Product tipo de producto con su volumen unitario en m³.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name,omitempty"`
	VolumeM3 float64 `json:"volumeM3"`
}
