package irq

// Vector table positions of the STM32F1 lines used by this module.
const (
	EXTI0        IRQ = 6
	EXTI1        IRQ = 7
	EXTI2        IRQ = 8
	EXTI3        IRQ = 9
	EXTI4        IRQ = 10
	DMA1Channel1 IRQ = 11
	DMA1Channel2 IRQ = 12 // USART3 TX
	DMA1Channel3 IRQ = 13 // USART3 RX
	DMA1Channel4 IRQ = 14 // USART1 TX
	DMA1Channel5 IRQ = 15 // USART1 RX
	DMA1Channel6 IRQ = 16 // USART2 RX
	DMA1Channel7 IRQ = 17 // USART2 TX
	EXTI9to5     IRQ = 23 // pins 5 to 9
	TIM2         IRQ = 28
	TIM3         IRQ = 29
	TIM4         IRQ = 30
	EXTI15to10   IRQ = 40 // pins 10 to 15
)
