package model

import (
	"math"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/epierr"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/params"
)

// Pair holds the per-RegionPair derived constants: the birth rate
// lambda (scaled to the pair's average length), beta, the four link
// probabilities in log space, and the path-length normalisation
// constants log(lambda/mu), log(lambda*beta), and D.
type Pair struct {
	Lambda float64
	Beta   float64

	// LogLinkP holds, in order, log p'0, log p1, log p'1, log p''1.
	LogLinkP [4]float64

	LogLambdaMu   float64
	LogLambdaBeta float64
	D             float64
}

// BuildPair derives the length-dependent constants for a pair whose
// query and target have average length nbar = (|S1|+|S2|)/2. It
// returns epierr.InvalidParameters when the derived beta fails the
// (1 - exp(-mu) - mu*beta) >= 0 precondition, including when beta is
// not a number.
func BuildPair(p *params.Params, nbar float64) (*Pair, error) {
	mu := p.Mu
	lambda := mu * nbar / (nbar + 2)

	beta := (1 - math.Exp(lambda-mu)) / (mu - lambda*math.Exp(lambda-mu))

	if !(1-math.Exp(-mu)-mu*beta >= 0) {
		return nil, &epierr.InvalidParameters{Reason: "1 - exp(-mu) - mu*beta < 0"}
	}

	pPrime0 := mu * beta
	p1 := math.Exp(-mu) * (1 - lambda*beta)
	pPrime1 := (1 - math.Exp(-mu) - mu*beta) * (1 - lambda*beta)
	pDoublePrime1 := 1 - lambda*beta

	pr := &Pair{
		Lambda: lambda,
		Beta:   beta,
		LogLinkP: [4]float64{
			math.Log(pPrime0),
			math.Log(p1),
			math.Log(pPrime1),
			math.Log(pDoublePrime1),
		},
		LogLambdaMu:   math.Log(lambda / mu),
		LogLambdaBeta: math.Log(lambda * beta),
	}
	pr.D = math.Max(pr.LogLinkP[1], pr.LogLinkP[3]) + pr.LogLambdaMu
	return pr, nil
}
