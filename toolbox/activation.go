package toolbox

import "github.com/chewxy/math32"

// Sigmoid is the logistic function 1 / (1 + e^-z).
func Sigmoid(z float32) float32 {
	return 1 / (1 + math32.Exp(-z))
}

// SigmoidDerivative is the derivative of Sigmoid expressed in terms of its
// output.  a must already be Sigmoid(z), never z itself.
func SigmoidDerivative(a float32) float32 {
	return a * (1 - a)
}
