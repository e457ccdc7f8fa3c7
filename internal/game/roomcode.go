package game

import "crypto/rand"

// No vowels (avoids accidental words), no 0/1/I/L (ambiguous on screens).
const codeAlphabet = "BCDFGHJKMNPQRSTVWXZ23456789"

const codeLength = 3

func generateRoomCode() string {
	b := make([]byte, codeLength)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}
