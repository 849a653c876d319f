// Package sanitize form gönderim payload'larını kaydetmeden önce temizler.
// Payload daha sonra onay ekranında ve giden e-postalarda olduğu gibi render
// edildiği için her string yaprağı HTML entity'lerine çevrilir; bu bir
// injection önlemidir, kozmetik değildir.
package sanitize

import "html"

// Map verilen payload'un derin kopyasını, tüm string yaprakları escape
// edilmiş halde döndürür. Orijinal map değiştirilmez.
func Map(payload map[string]interface{}) map[string]interface{} {
	if payload == nil {
		return nil
	}
	out := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		out[key] = Value(value)
	}
	return out
}

// Value tek bir değeri özyinelemeli olarak temizler. String olmayan skaler
// değerler (sayı, bool, nil) olduğu gibi kalır.
func Value(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return html.EscapeString(v)
	case map[string]interface{}:
		return Map(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = Value(item)
		}
		return out
	default:
		return v
	}
}
