package pinmap

// Board pin assignments for the Raspberry Pi Pico. Aliases with NA exist
// so the console can list the function but no pin is wired yet.
//
// Pinout reference: https://pico.pinout.xyz
var boardDefs = []Def{
	// ADC
	{Alias: "ADC0", ID: 26, Group: GroupADC},
	{Alias: "ADC1", ID: 27, Group: GroupADC},
	{Alias: "ADC2", ID: 28, Group: GroupADC},
	{Alias: "ADC3", ID: 29, Group: GroupADC},

	// PWM
	{Alias: "PWM0_A", ID: NA, Group: GroupPWM},
	{Alias: "PWM0_B", ID: NA, Group: GroupPWM},
	{Alias: "PWM1_A", ID: NA, Group: GroupPWM},
	{Alias: "PWM1_B", ID: NA, Group: GroupPWM},
	{Alias: "PWM2_A", ID: NA, Group: GroupPWM},
	{Alias: "PWM2_B", ID: 21, Group: GroupPWM},
	{Alias: "PWM3_A", ID: 6, Group: GroupPWM},
	{Alias: "PWM3_B", ID: NA, Group: GroupPWM},
	{Alias: "PWM4_A", ID: 8, Group: GroupPWM},
	{Alias: "PWM4_B", ID: NA, Group: GroupPWM},
	{Alias: "PWM5_A", ID: NA, Group: GroupPWM},
	{Alias: "PWM5_B", ID: NA, Group: GroupPWM},
	{Alias: "PWM6_A", ID: NA, Group: GroupPWM},
	{Alias: "PWM6_B", ID: NA, Group: GroupPWM},
	{Alias: "PWM7_A", ID: NA, Group: GroupPWM},
	{Alias: "PWM7_B", ID: NA, Group: GroupPWM},

	// I2C
	{Alias: "I2C0_SDA", ID: 2, Group: GroupI2C},
	{Alias: "I2C0_SCL", ID: NA, Group: GroupI2C},
	{Alias: "I2C1_SDA", ID: NA, Group: GroupI2C},
	{Alias: "I2C1_SCL", ID: NA, Group: GroupI2C},

	// SPI
	{Alias: "SPI0_RX", ID: 4, Group: GroupSPI},
	{Alias: "SPI0_TX", ID: NA, Group: GroupSPI},
	{Alias: "SPI0_SCK", ID: NA, Group: GroupSPI},
	{Alias: "SPI0_CSN", ID: NA, Group: GroupSPI},
	{Alias: "SPI1_RX", ID: NA, Group: GroupSPI},
	{Alias: "SPI1_TX", ID: NA, Group: GroupSPI},
	{Alias: "SPI1_SCK", ID: NA, Group: GroupSPI},
	{Alias: "SPI1_CSN", ID: NA, Group: GroupSPI},

	// UART
	{Alias: "UART0_TX", ID: 5, Group: GroupUART},
	{Alias: "UART0_CTS", ID: NA, Group: GroupUART},
	{Alias: "UART0_RX", ID: NA, Group: GroupUART},
	{Alias: "UART0_RTS", ID: NA, Group: GroupUART},
	{Alias: "UART1_TX", ID: NA, Group: GroupUART},
	{Alias: "UART1_RX", ID: NA, Group: GroupUART},
	{Alias: "UART1_CTS", ID: NA, Group: GroupUART},
	{Alias: "UART1_RTS", ID: NA, Group: GroupUART},

	// Inputs
	{Alias: "IN_A", ID: 9, Group: GroupInput},
	{Alias: "IN_B", ID: 20, Group: GroupInput},
	{Alias: "IN_C", ID: 22, Group: GroupInput},
	{Alias: "BUTTON", ID: 23, Group: GroupInput},

	// Outputs
	{Alias: "OUT_A", ID: 0, Group: GroupOutput},
	{Alias: "OUT_B", ID: 1, Group: GroupOutput},
	{Alias: "OUT_C", ID: 3, Group: GroupOutput},
	{Alias: "LED", ID: 25, Group: GroupOutput},

	// Other
	{Alias: "DHT22", ID: 16, Group: GroupOther},

	// Core 1
	{Alias: "C1_IN_A", ID: 10, Group: GroupCore1Input},
	{Alias: "C1_OUT_A", ID: 11, Group: GroupCore1Output},
}

// Board builds the validated table for this board revision.
func Board() *Map { return New(boardDefs) }
