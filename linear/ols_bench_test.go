package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// createBenchmarkData はベンチマーク用のデータを生成する
func createBenchmarkData(rows, cols int) (*mat.Dense, *mat.VecDense) {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			X.Set(i, j, rng.Float64()*2.0-1.0)
		}
	}

	trueWeights := make([]float64, cols)
	for j := 0; j < cols; j++ {
		trueWeights[j] = float64(j+1) * 0.5
	}

	// y = X * weights + 小さなノイズ
	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += X.At(i, j) * trueWeights[j]
		}
		sum += (rng.Float64() - 0.5) * 0.1
		y.SetVec(i, sum)
	}

	return X, y
}

// BenchmarkOLSFit はFitメソッドのベンチマークを実行する
func BenchmarkOLSFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Small_100x10", 100, 10},
		{"Small_500x10", 500, 10},
		{"Medium_1000x10", 1000, 10},
		{"Medium_2000x10", 2000, 10},
		{"Large_5000x20", 5000, 20},
		{"Large_10000x20", 10000, 20},
		{"XLarge_20000x50", 20000, 50},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				o := NewOLS(size.cols)
				if err := o.Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkOLSPredict は学習済みモデルの予測のみを測定する
func BenchmarkOLSPredict(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Predict_1000x10", 1000, 10},
		{"Predict_10000x20", 10000, 20},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows, size.cols)
			o := NewOLS(size.cols)
			if err := o.Fit(X, y); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := o.Predict(X); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
