package main

import "math/rand/v2"

// weatherQueryPhrases maps a weather category to short descriptive phrases
// used to flavor the keyword-fallback search query. Unknown categories map
// to nothing.
var weatherQueryPhrases = map[string][]string{
	"rain":   {"rainy day", "rain vibes", "monsoon mood"},
	"clouds": {"cloudy day", "moody sky", "chill clouds"},
	"clear":  {"sunny day", "bright mood", "happy sunshine"},
	"fog":    {"foggy morning", "fog calm"},
	"mist":   {"misty morning", "mist calm"},
	"snow":   {"snow day", "winter calm"},
	"haze":   {"haze calm", "hazy vibes"},
}

// intn is the random draw used by weatherQueryPhrase. Tests swap it out to
// make the choice deterministic.
var intn = rand.IntN

// weatherQueryPhrase picks a phrase for the reading's category, uniformly
// at random. It returns "" for categories without an entry.
func weatherQueryPhrase(weather WeatherReading) string {
	phrases, ok := weatherQueryPhrases[weather.Category]
	if !ok {
		return ""
	}
	return phrases[intn(len(phrases))]
}
