// Package gemini implements the heritage provider interfaces on Google's
// Generative AI API: composite text generation and vision analysis with
// Gemini models, image generation with Imagen.
//
// API failures are classified into the shared resilience taxonomy (rate
// limited, unauthorized, upstream error) so the orchestration layer can make
// retry and fallback decisions without knowing provider specifics.
package gemini
